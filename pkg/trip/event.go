package trip

import (
	"fmt"
	"time"
)

// DefaultDuration is assigned when source data omits an event duration.
const DefaultDuration Duration = "01:00"

// allDayThreshold marks events of this length or longer as all-day.
const allDayThreshold = 8 * time.Hour

// Duration is a wall-clock duration in "HH:MM" form, the wire format used
// for event durations throughout the trip record.
type Duration string

// ToTimeDuration parses the "HH:MM" value. Empty or malformed values fall
// back to DefaultDuration (60 minutes).
func (d Duration) ToTimeDuration() time.Duration {
	var hours, minutes int
	if _, err := fmt.Sscanf(string(d), "%d:%d", &hours, &minutes); err != nil {
		return time.Hour
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return time.Hour
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
}

// DurationOf formats a time.Duration back into the "HH:MM" wire form.
func DurationOf(d time.Duration) Duration {
	totalMinutes := int(d.Minutes())
	return Duration(fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60))
}

type Priority int

const (
	PriorityUnset Priority = 0
	PriorityMust  Priority = 1
	PriorityMaybe Priority = 2
	PriorityLeast Priority = 3
	PriorityHigh  Priority = 10
)

// ClassName returns the display class derived from the priority. It drives
// styling only, never scheduling.
func (p Priority) ClassName() string {
	switch p {
	case PriorityMust:
		return "priority-must"
	case PriorityHigh:
		return "priority-high"
	case PriorityMaybe:
		return "priority-maybe"
	case PriorityLeast:
		return "priority-least"
	default:
		return ""
	}
}

type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// EventDetails carries the fields shared by both event variants. An event
// lives in exactly one of the two pools at any time: the calendar (scheduled)
// or the sidebar (unscheduled). The only transition is sidebar to calendar.
type EventDetails struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CategoryID   int       `json:"categoryId"`
	Duration     Duration  `json:"duration"`
	Location     *Location `json:"location,omitempty"`
	Priority     Priority  `json:"priority"`
	Budget       int       `json:"budget,omitempty"`
	Image        string    `json:"image,omitempty"`
	AffiliateURL string    `json:"affiliateUrl,omitempty"`
}

// CalendarEvent is an event placed on a specific day with assigned times.
type CalendarEvent struct {
	EventDetails
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
}

// SidebarEvent is an event not yet assigned a time slot.
type SidebarEvent struct {
	EventDetails
}

// Schedule places a sidebar event on the calendar at the given start time.
// The end time follows from the event's own duration.
func (e SidebarEvent) Schedule(start time.Time) CalendarEvent {
	d := e.Duration.ToTimeDuration()
	return CalendarEvent{
		EventDetails: e.EventDetails,
		Start:        start,
		End:          start.Add(d),
		AllDay:       d >= allDayThreshold,
	}
}
