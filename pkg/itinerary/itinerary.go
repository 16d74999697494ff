package itinerary

import (
	"time"

	"github.com/wonderplan/wonderplan/pkg/trip"
)

// RawActivity is one candidate activity as returned by the upstream
// trip-generation source, before formatting.
type RawActivity struct {
	Title        string
	Description  string
	Address      string
	Lat          float64
	Lng          float64
	DurationMin  int
	Budget       int
	Image        string
	AffiliateURL string
}

// DayPlan is the ordered list of raw activities proposed for one trip day.
// Day is the 0-based index within the itinerary.
type DayPlan struct {
	Day        int
	Activities []RawActivity
}

// BuildParams controls a single itinerary build pass.
type BuildParams struct {
	// NumberOfDays bounds how many day plans receive calendar placement;
	// activities beyond it stay in the sidebar pool.
	NumberOfDays int
	// Start is the trip's first day. Day windows are anchored at
	// Start + dayIndex days, in Start's location.
	Start       time.Time
	Destination string
	// Locale selects the language of category display titles ("en"/"he").
	Locale string
}

// BuildResult is the complete output of one build pass. AllEvents is the
// full candidate pool; CalendarEvents and SidebarEvents partition it.
type BuildResult struct {
	AllEvents      []trip.SidebarEvent
	CalendarEvents []trip.CalendarEvent
	SidebarEvents  map[int][]trip.SidebarEvent
	Categories     []trip.Category
}
