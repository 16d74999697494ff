package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/config"
	"github.com/wonderplan/wonderplan/internal/event_bus"
	"github.com/wonderplan/wonderplan/pkg/category"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

// Service places one hotel event per trip day onto the calendar, cycling
// through the sidebar's hotel candidates, without disturbing any
// pre-existing calendar content.
type Service struct {
	trips *trip.Service
	bus   *event_bus.EventBus
	cfg   config.Scheduler
}

func NewService(trips *trip.Service, bus *event_bus.EventBus, cfg config.Scheduler) *Service {
	return &Service{trips: trips, bus: bus, cfg: cfg}
}

// AutoSchedule loads the named trip for the current user and appends hotel
// calendar entries. Guard failures return the schedule unchanged with a skip
// outcome; only a missing trip or a persistence failure is an error. The
// updated calendar is written back in a single trip update with no rollback.
func (s *Service) AutoSchedule(ctx context.Context, tripName string) (*Result, error) {
	t, err := s.trips.GetTripByName(ctx, tripName)
	if err != nil {
		return nil, err
	}

	_, hasFlights := category.FindKind(t.Categories, category.KindFlights)
	hotelCategoryId, hasHotels := category.FindKind(t.Categories, category.KindHotels)
	if !hasFlights || !hasHotels {
		log.Errorf("trip %q has no flight/hotel categories, skipping auto-schedule", tripName)
		return &Result{Outcome: SkippedMissingCategories, Calendar: t.CalendarEvents}, nil
	}

	// Hotel scheduling is strictly idempotent: it only runs on a trip with
	// zero scheduled hotels.
	alreadyScheduled := lo.SomeBy(t.CalendarEvents, func(e trip.CalendarEvent) bool {
		return e.CategoryID == hotelCategoryId
	})
	if alreadyScheduled {
		log.Infof("trip %q already has scheduled hotels, skipping auto-schedule", tripName)
		return &Result{Outcome: SkippedAlreadyScheduled, Calendar: t.CalendarEvents}, nil
	}

	candidates := t.SidebarEvents[hotelCategoryId]
	if len(candidates) == 0 {
		log.Infof("trip %q has no hotel candidates in the sidebar, skipping auto-schedule", tripName)
		return &Result{Outcome: SkippedNoCandidates, Calendar: t.CalendarEvents}, nil
	}

	tripStart := startOfDay(t.DateRange.Start)
	numberOfDays := tripDays(tripStart, t.CalendarEvents)
	maxId := maxEventId(t)

	for day := 0; day < numberOfDays; day++ {
		candidate := candidates[day%len(candidates)]
		start := tripStart.AddDate(0, 0, day).Add(time.Duration(s.cfg.HotelStartHour) * time.Hour)
		t.CalendarEvents = append(t.CalendarEvents, placeHotel(candidate, maxId+day+1, start))
	}

	if _, err := s.trips.UpdateTrip(ctx, *t); err != nil {
		return nil, fmt.Errorf("failed to persist scheduled trip: %w", err)
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TripScheduledEvent, event_bus.TripScheduled{
		TripUid:      t.Uid,
		TripName:     t.Name,
		HotelsPlaced: numberOfDays,
	})); err != nil {
		log.Errorf("failed to publish trip scheduled event: %v", err)
	}

	return &Result{Outcome: Scheduled, Calendar: t.CalendarEvents}, nil
}

// tripDays derives the day count from the span between trip start and the
// end of the last calendar event; an empty calendar spans a single day.
func tripDays(tripStart time.Time, calendar []trip.CalendarEvent) int {
	lastEnd := tripStart
	if last := lo.MaxBy(calendar, func(a, b trip.CalendarEvent) bool {
		return a.End.After(b.End)
	}); len(calendar) > 0 {
		lastEnd = last.End
	}

	span := lastEnd.Sub(tripStart)
	if span <= 0 {
		return 1
	}
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) > 0 {
		days++
	}
	return days + 1
}

// maxEventId finds the highest numeric id across both event pools, used to
// mint fresh non-colliding ids for the cloned hotel entries.
func maxEventId(t *trip.Trip) int {
	maxId := 0
	for _, e := range t.CalendarEvents {
		if e.ID > maxId {
			maxId = e.ID
		}
	}
	for _, events := range t.SidebarEvents {
		for _, e := range events {
			if e.ID > maxId {
				maxId = e.ID
			}
		}
	}
	return maxId
}

// placeHotel clones a sidebar candidate onto the calendar. The stated
// duration drives the end time; hotels are never marked all-day.
func placeHotel(candidate trip.SidebarEvent, id int, start time.Time) trip.CalendarEvent {
	details := candidate.EventDetails
	details.ID = id
	duration := details.Duration
	if duration == "" {
		duration = trip.DefaultDuration
		details.Duration = duration
	}
	return trip.CalendarEvent{
		EventDetails: details,
		Start:        start,
		End:          start.Add(duration.ToTimeDuration()),
		AllDay:       false,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
