package itinerary

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/event_bus"
	"github.com/wonderplan/wonderplan/pkg/trip"
	"github.com/wonderplan/wonderplan/pkg/user"
)

// ErrEmptyItinerary is returned when the upstream source produced no day
// plans; callers surface it as a not-found condition.
var ErrEmptyItinerary = errors.New("itinerary is empty")

// CreateTripRequest carries everything needed to build and store a trip.
type CreateTripRequest struct {
	Name        string
	Destination string
	DateRange   trip.DateRange
	// NumberOfDays defaults to the date range length when zero.
	NumberOfDays int
	// Locale defaults to the current user's calendar locale when empty.
	Locale    string
	Itinerary []DayPlan
}

// Service builds a trip from an upstream itinerary and persists it.
type Service struct {
	trips     *trip.Service
	formatter *Formatter
	bus       *event_bus.EventBus
}

func NewService(trips *trip.Service, formatter *Formatter, bus *event_bus.EventBus) *Service {
	return &Service{trips: trips, formatter: formatter, bus: bus}
}

func (s *Service) CreateTrip(ctx context.Context, req CreateTripRequest) (*trip.Trip, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if len(req.Itinerary) == 0 {
		return nil, ErrEmptyItinerary
	}

	numberOfDays := req.NumberOfDays
	if numberOfDays <= 0 {
		numberOfDays = int(req.DateRange.End.Sub(req.DateRange.Start).Hours()/24) + 1
	}
	locale := req.Locale
	if locale == "" {
		locale = currentUser.Settings.CalendarLocale
	}

	built := s.formatter.BuildCalendarEvents(req.Itinerary, BuildParams{
		NumberOfDays: numberOfDays,
		Start:        req.DateRange.Start,
		Destination:  req.Destination,
		Locale:       locale,
	})

	created, err := s.trips.CreateTrip(ctx, trip.Trip{
		Name:           req.Name,
		Destination:    req.Destination,
		AllEvents:      built.AllEvents,
		CalendarEvents: built.CalendarEvents,
		SidebarEvents:  built.SidebarEvents,
		Categories:     built.Categories,
		DateRange:      req.DateRange,
	})
	if err != nil {
		return nil, err
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TripItineraryBuiltEvent, event_bus.TripItineraryBuilt{
		TripUid:       created.Uid,
		Destination:   created.Destination,
		CalendarCount: len(created.CalendarEvents),
		SidebarCount:  len(created.AllEvents) - len(created.CalendarEvents),
	})); err != nil {
		log.Errorf("failed to publish itinerary built event: %v", err)
	}

	return created, nil
}
