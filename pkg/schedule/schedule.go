package schedule

import "github.com/wonderplan/wonderplan/pkg/trip"

// Outcome states what the auto-scheduler did. Skips are ordinary results,
// not errors: the schedule is returned unchanged and the reason travels with
// it so callers and tests can assert on why nothing happened.
type Outcome string

const (
	Scheduled Outcome = "scheduled"
	// SkippedMissingCategories: the trip has no flights or no hotels category.
	SkippedMissingCategories Outcome = "missing_categories"
	// SkippedAlreadyScheduled: the calendar already holds a hotel event.
	SkippedAlreadyScheduled Outcome = "already_scheduled"
	// SkippedNoCandidates: the sidebar holds no hotel events to place.
	SkippedNoCandidates Outcome = "no_hotel_candidates"
)

// Result is the auto-scheduler's output: the full calendar (old events plus
// any appended hotel entries) and the outcome of the run.
type Result struct {
	Outcome  Outcome
	Calendar []trip.CalendarEvent
}
