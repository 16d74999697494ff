package event_bus

const (
	TripItineraryBuiltEvent EventType = "trip.itinerary_built"
	TripScheduledEvent      EventType = "trip.scheduled"
)

// TripItineraryBuilt is published after the formatter has turned an upstream
// itinerary into calendar and sidebar pools and the trip has been stored.
type TripItineraryBuilt struct {
	TripUid       string
	Destination   string
	CalendarCount int
	SidebarCount  int
}

// TripScheduled is published after the auto-scheduler has appended hotel
// events to a trip's calendar.
type TripScheduled struct {
	TripUid      string
	TripName     string
	HotelsPlaced int
}
