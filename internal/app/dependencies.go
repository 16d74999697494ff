package app

import (
	"database/sql"

	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/config"
	"github.com/wonderplan/wonderplan/internal/event_bus"
	"github.com/wonderplan/wonderplan/internal/utils"
	"github.com/wonderplan/wonderplan/pkg/export"
	"github.com/wonderplan/wonderplan/pkg/itinerary"
	"github.com/wonderplan/wonderplan/pkg/schedule"
	"github.com/wonderplan/wonderplan/pkg/trip"
	"github.com/wonderplan/wonderplan/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	TripRepo    trip.Repository
	TripService *trip.Service
	TripHandler *trip.Handler

	ItineraryFormatter *itinerary.Formatter
	ItineraryService   *itinerary.Service
	ItineraryHandler   *itinerary.Handler

	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	ICalRenderer  *export.ICalRenderer
	ExportHandler *export.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TripRepo = trip.NewRepository(db)
	deps.TripService = trip.NewService(deps.TripRepo)
	deps.TripHandler = trip.NewHandler(deps.TripService)

	deps.ItineraryFormatter = itinerary.NewFormatter(cfg.Scheduler, utils.SystemRand{})
	deps.ItineraryService = itinerary.NewService(deps.TripService, deps.ItineraryFormatter, deps.Bus)
	deps.ItineraryHandler = itinerary.NewHandler(deps.ItineraryService)

	deps.ScheduleService = schedule.NewService(deps.TripService, deps.Bus, cfg.Scheduler)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.ICalRenderer = export.NewICalRenderer()
	deps.ExportHandler = export.NewHandler(deps.TripService, deps.ICalRenderer)

	subscribeBusLogging(deps.Bus)

	return deps
}

// subscribeBusLogging reports build and scheduling activity at info level.
func subscribeBusLogging(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.TripItineraryBuilt](bus, event_bus.TripItineraryBuiltEvent,
		func(e event_bus.EventT[event_bus.TripItineraryBuilt]) error {
			log.Infof("itinerary built for trip %s (%s): %d calendar events, %d sidebar events",
				e.Data.TripUid, e.Data.Destination, e.Data.CalendarCount, e.Data.SidebarCount)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.TripScheduled](bus, event_bus.TripScheduledEvent,
		func(e event_bus.EventT[event_bus.TripScheduled]) error {
			log.Infof("auto-scheduled trip %s: %d hotel events placed", e.Data.TripName, e.Data.HotelsPlaced)
			return nil
		})
}
