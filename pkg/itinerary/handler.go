package itinerary

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/rest"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type RawActivityDTO struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Address      string  `json:"address,omitempty"`
	Lat          float64 `json:"lat,omitempty"`
	Lng          float64 `json:"lng,omitempty"`
	DurationMin  int     `json:"durationMin,omitempty"`
	Budget       int     `json:"budget,omitempty"`
	Image        string  `json:"image,omitempty"`
	AffiliateURL string  `json:"affiliateUrl,omitempty"`
}

type DayPlanDTO struct {
	Day        int              `json:"day"`
	Activities []RawActivityDTO `json:"activities"`
}

type CreateTripDTO struct {
	Name         string            `json:"name"`
	Destination  string            `json:"destination"`
	DateRange    trip.DateRangeDTO `json:"dateRange"`
	NumberOfDays int               `json:"numberOfDays,omitempty"`
	Locale       string            `json:"calendarLocale,omitempty"`
	Itinerary    []DayPlanDTO      `json:"itinerary"`
}

// CreateTrip builds the calendar from the submitted itinerary and stores the
// resulting trip for the current user.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating trip from itinerary")

	var dto CreateTripDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	if dto.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Trip name is required",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	start, err := time.Parse(dateLayout, dto.DateRange.Start)
	if err != nil {
		writeDateError(w, "dateRange.start")
		return
	}
	end, err := time.Parse(dateLayout, dto.DateRange.End)
	if err != nil {
		writeDateError(w, "dateRange.end")
		return
	}

	created, err := h.service.CreateTrip(r.Context(), CreateTripRequest{
		Name:         dto.Name,
		Destination:  dto.Destination,
		DateRange:    trip.DateRange{Start: start, End: end},
		NumberOfDays: dto.NumberOfDays,
		Locale:       dto.Locale,
		Itinerary:    dtoToDayPlans(dto.Itinerary),
	})
	if err != nil {
		if errors.Is(err, ErrEmptyItinerary) {
			http.Error(w, "no itinerary to build from", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(trip.TripToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeDateError(w http.ResponseWriter, field string) {
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid " + field + " format",
		Details: field + " must be in YYYY-MM-DD format",
	}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func dtoToDayPlans(dtos []DayPlanDTO) []DayPlan {
	days := make([]DayPlan, 0, len(dtos))
	for _, d := range dtos {
		activities := make([]RawActivity, 0, len(d.Activities))
		for _, a := range d.Activities {
			activities = append(activities, RawActivity{
				Title:        a.Title,
				Description:  a.Description,
				Address:      a.Address,
				Lat:          a.Lat,
				Lng:          a.Lng,
				DurationMin:  a.DurationMin,
				Budget:       a.Budget,
				Image:        a.Image,
				AffiliateURL: a.AffiliateURL,
			})
		}
		days = append(days, DayPlan{Day: d.Day, Activities: activities})
	}
	return days
}
