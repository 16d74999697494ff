package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type AutoScheduleRequestDTO struct {
	TripName string `json:"tripName"`
}

type AutoScheduleResponseDTO struct {
	Success       bool                    `json:"success"`
	ScheduledTrip []trip.CalendarEventDTO `json:"scheduledTrip,omitempty"`
	Skipped       string                  `json:"skipped,omitempty"`
	Message       string                  `json:"message,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

var skipMessages = map[Outcome]string{
	SkippedMissingCategories: "trip has no flight or hotel categories",
	SkippedAlreadyScheduled:  "trip already has scheduled hotels",
	SkippedNoCandidates:      "no hotel candidates available in the sidebar",
}

// AutoSchedule places hotel events onto the named trip's calendar. Guard
// skips respond 200 with success=false and a machine-readable reason; a
// missing trip responds 404.
func (h *Handler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request AutoScheduleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.TripName == "" {
		w.WriteHeader(http.StatusBadRequest)
		writeResponse(w, AutoScheduleResponseDTO{
			Success: false,
			Message: "tripName is required",
		})
		return
	}

	result, err := h.service.AutoSchedule(r.Context(), request.TripName)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			w.WriteHeader(http.StatusNotFound)
			writeResponse(w, AutoScheduleResponseDTO{
				Success: false,
				Message: "trip not found",
			})
			return
		}
		log.Errorf("auto-schedule failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeResponse(w, AutoScheduleResponseDTO{
			Success: false,
			Message: "auto-schedule failed",
			Error:   err.Error(),
		})
		return
	}

	if result.Outcome != Scheduled {
		w.WriteHeader(http.StatusOK)
		writeResponse(w, AutoScheduleResponseDTO{
			Success: false,
			Skipped: string(result.Outcome),
			Message: skipMessages[result.Outcome],
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	writeResponse(w, AutoScheduleResponseDTO{
		Success:       true,
		ScheduledTrip: calendarToDTOs(result.Calendar),
	})
}

func writeResponse(w http.ResponseWriter, response AutoScheduleResponseDTO) {
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func calendarToDTOs(calendar []trip.CalendarEvent) []trip.CalendarEventDTO {
	dtos := make([]trip.CalendarEventDTO, 0, len(calendar))
	for _, e := range calendar {
		dtos = append(dtos, trip.CalendarEventToDTO(e))
	}
	return dtos
}
