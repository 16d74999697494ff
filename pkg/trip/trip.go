package trip

import "time"

// Category is a semantic grouping of events. Ids are dense, 1-based, and
// assigned in discovery order within a single itinerary build.
type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// DateRange is the inclusive start/end of a trip.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Trip is the persisted aggregate for one planned journey. AllEvents is the
// full candidate pool; CalendarEvents holds everything placed on specific
// days; SidebarEvents holds the rest, grouped by category id.
type Trip struct {
	ID             int
	Uid            string
	UserID         int
	Name           string
	Destination    string
	AllEvents      []SidebarEvent
	CalendarEvents []CalendarEvent
	SidebarEvents  map[int][]SidebarEvent
	Categories     []Category
	DateRange      DateRange
	CreatedAt      time.Time
}
