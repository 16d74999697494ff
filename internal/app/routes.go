package app

import (
	"github.com/gorilla/mux"
	"github.com/wonderplan/wonderplan/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Trips
	r.HandleFunc("/api/trip", deps.ItineraryHandler.CreateTrip).Methods("POST")
	r.HandleFunc("/api/trip", deps.TripHandler.GetTrips).Methods("GET")
	r.HandleFunc("/api/trip/{tripUid}", deps.TripHandler.GetTrip).Methods("GET")
	r.HandleFunc("/api/trip/{tripUid}", deps.TripHandler.UpdateTrip).Methods("PUT")
	r.HandleFunc("/api/trip/{tripUid}", deps.TripHandler.DeleteTrip).Methods("DELETE")
	r.HandleFunc("/api/trip/{tripUid}/ical", deps.ExportHandler.ExportICal).Methods("GET")

	// Auto-scheduling
	r.HandleFunc("/api/auto-schedule", deps.ScheduleHandler.AutoSchedule).Methods("POST")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")
}
