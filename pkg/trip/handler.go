package trip

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/rest"
)

const dateLayout = "2006-01-02"

type Handler struct {
	trips *Service
}

func NewHandler(trips *Service) *Handler {
	return &Handler{trips: trips}
}

type LocationDTO struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type SidebarEventDTO struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	CategoryID   int          `json:"categoryId"`
	Duration     string       `json:"duration"`
	Location     *LocationDTO `json:"location,omitempty"`
	Priority     int          `json:"priority"`
	ClassName    string       `json:"className,omitempty"`
	Budget       int          `json:"budget,omitempty"`
	Image        string       `json:"image,omitempty"`
	AffiliateURL string       `json:"affiliateUrl,omitempty"`
}

type CalendarEventDTO struct {
	SidebarEventDTO
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
}

type CategoryDTO struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

type DateRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TripDTO struct {
	Uid            string                    `json:"uid"`
	Name           string                    `json:"name"`
	Destination    string                    `json:"destination"`
	AllEvents      []SidebarEventDTO         `json:"allEvents"`
	CalendarEvents []CalendarEventDTO        `json:"calendarEvents"`
	SidebarEvents  map[int][]SidebarEventDTO `json:"sidebarEvents"`
	Categories     []CategoryDTO             `json:"categories"`
	DateRange      DateRangeDTO              `json:"dateRange"`
}

func (h *Handler) GetTrips(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	trips, err := h.trips.GetTrips(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TripDTO, 0, len(trips))
	for _, t := range trips {
		dtos = append(dtos, TripToDTO(t))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	tripUid := vars["tripUid"]

	trip, err := h.trips.GetTripByUid(r.Context(), tripUid)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TripToDTO(*trip)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	tripUid := vars["tripUid"]

	var dto TripDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	dto.Uid = tripUid

	trip, err := DTOToTrip(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid trip payload",
			Details: err.Error(),
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	updated, err := h.trips.UpdateTrip(r.Context(), trip)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(TripToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tripUid := vars["tripUid"]

	err := h.trips.DeleteTrip(r.Context(), tripUid)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("Deleted trip %s", tripUid)
	w.WriteHeader(http.StatusNoContent)
}

func sidebarEventToDTO(e SidebarEvent) SidebarEventDTO {
	dto := SidebarEventDTO{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		CategoryID:   e.CategoryID,
		Duration:     string(e.Duration),
		Priority:     int(e.Priority),
		ClassName:    e.Priority.ClassName(),
		Budget:       e.Budget,
		Image:        e.Image,
		AffiliateURL: e.AffiliateURL,
	}
	if e.Location != nil {
		dto.Location = &LocationDTO{Address: e.Location.Address, Lat: e.Location.Lat, Lng: e.Location.Lng}
	}
	return dto
}

// CalendarEventToDTO converts a single calendar event for responses that
// return the calendar without the surrounding trip.
func CalendarEventToDTO(e CalendarEvent) CalendarEventDTO {
	return CalendarEventDTO{
		SidebarEventDTO: sidebarEventToDTO(SidebarEvent{EventDetails: e.EventDetails}),
		Start:           e.Start,
		End:             e.End,
		AllDay:          e.AllDay,
	}
}

func TripToDTO(t Trip) TripDTO {
	allEvents := make([]SidebarEventDTO, 0, len(t.AllEvents))
	for _, e := range t.AllEvents {
		allEvents = append(allEvents, sidebarEventToDTO(e))
	}
	calendarEvents := make([]CalendarEventDTO, 0, len(t.CalendarEvents))
	for _, e := range t.CalendarEvents {
		calendarEvents = append(calendarEvents, CalendarEventToDTO(e))
	}
	sidebarEvents := make(map[int][]SidebarEventDTO, len(t.SidebarEvents))
	for categoryId, events := range t.SidebarEvents {
		dtos := make([]SidebarEventDTO, 0, len(events))
		for _, e := range events {
			dtos = append(dtos, sidebarEventToDTO(e))
		}
		sidebarEvents[categoryId] = dtos
	}
	categories := make([]CategoryDTO, 0, len(t.Categories))
	for _, c := range t.Categories {
		categories = append(categories, CategoryDTO{ID: c.ID, Title: c.Title, Icon: c.Icon})
	}
	return TripDTO{
		Uid:            t.Uid,
		Name:           t.Name,
		Destination:    t.Destination,
		AllEvents:      allEvents,
		CalendarEvents: calendarEvents,
		SidebarEvents:  sidebarEvents,
		Categories:     categories,
		DateRange: DateRangeDTO{
			Start: t.DateRange.Start.Format(dateLayout),
			End:   t.DateRange.End.Format(dateLayout),
		},
	}
}

func dtoToSidebarEvent(dto SidebarEventDTO) SidebarEvent {
	details := EventDetails{
		ID:           dto.ID,
		Title:        dto.Title,
		Description:  dto.Description,
		CategoryID:   dto.CategoryID,
		Duration:     Duration(dto.Duration),
		Priority:     Priority(dto.Priority),
		Budget:       dto.Budget,
		Image:        dto.Image,
		AffiliateURL: dto.AffiliateURL,
	}
	if dto.Location != nil {
		details.Location = &Location{Address: dto.Location.Address, Lat: dto.Location.Lat, Lng: dto.Location.Lng}
	}
	return SidebarEvent{EventDetails: details}
}

func DTOToTrip(dto TripDTO) (Trip, error) {
	start, err := time.Parse(dateLayout, dto.DateRange.Start)
	if err != nil {
		return Trip{}, err
	}
	end, err := time.Parse(dateLayout, dto.DateRange.End)
	if err != nil {
		return Trip{}, err
	}

	allEvents := make([]SidebarEvent, 0, len(dto.AllEvents))
	for _, e := range dto.AllEvents {
		allEvents = append(allEvents, dtoToSidebarEvent(e))
	}
	calendarEvents := make([]CalendarEvent, 0, len(dto.CalendarEvents))
	for _, e := range dto.CalendarEvents {
		calendarEvents = append(calendarEvents, CalendarEvent{
			EventDetails: dtoToSidebarEvent(e.SidebarEventDTO).EventDetails,
			Start:        e.Start,
			End:          e.End,
			AllDay:       e.AllDay,
		})
	}
	sidebarEvents := make(map[int][]SidebarEvent, len(dto.SidebarEvents))
	for categoryId, events := range dto.SidebarEvents {
		converted := make([]SidebarEvent, 0, len(events))
		for _, e := range events {
			converted = append(converted, dtoToSidebarEvent(e))
		}
		sidebarEvents[categoryId] = converted
	}
	categories := make([]Category, 0, len(dto.Categories))
	for _, c := range dto.Categories {
		categories = append(categories, Category{ID: c.ID, Title: c.Title, Icon: c.Icon})
	}

	return Trip{
		Uid:            dto.Uid,
		Name:           dto.Name,
		Destination:    dto.Destination,
		AllEvents:      allEvents,
		CalendarEvents: calendarEvents,
		SidebarEvents:  sidebarEvents,
		Categories:     categories,
		DateRange:      DateRange{Start: start, End: end},
	}, nil
}
