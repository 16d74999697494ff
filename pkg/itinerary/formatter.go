package itinerary

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wonderplan/wonderplan/internal/config"
	"github.com/wonderplan/wonderplan/internal/utils"
	"github.com/wonderplan/wonderplan/pkg/category"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

const placementGrid = 15 * time.Minute

// Formatter turns raw upstream day plans into timestamped calendar events
// plus a sidebar pool of everything that was never placed. It performs no
// I/O; the only non-determinism is the injected gap sampler.
type Formatter struct {
	cfg  config.Scheduler
	rand utils.Rand
}

func NewFormatter(cfg config.Scheduler, rand utils.Rand) *Formatter {
	return &Formatter{cfg: cfg, rand: rand}
}

// Format normalizes one raw activity into an unscheduled event. The category
// is inferred from title and description keywords and resolved to an id,
// appending a new category when the title is unknown. A missing duration
// defaults to one hour.
func (f *Formatter) Format(raw RawActivity, id int, resolver *category.Resolver) trip.SidebarEvent {
	duration := trip.DefaultDuration
	if raw.DurationMin > 0 {
		duration = trip.DurationOf(time.Duration(raw.DurationMin) * time.Minute)
	}

	details := trip.EventDetails{
		ID:           id,
		Title:        raw.Title,
		Description:  raw.Description,
		CategoryID:   resolver.Resolve(category.Infer(raw.Title, raw.Description)),
		Duration:     duration,
		Budget:       raw.Budget,
		Image:        raw.Image,
		AffiliateURL: raw.AffiliateURL,
	}
	if raw.Lat != 0 || raw.Lng != 0 || raw.Address != "" {
		details.Location = &trip.Location{Address: raw.Address, Lat: raw.Lat, Lng: raw.Lng}
	}
	return trip.SidebarEvent{EventDetails: details}
}

// BuildCalendarEvents formats every activity and places each day's events
// sequentially inside that day's window, separated by randomized gaps capped
// so the day's unused time is not exceeded. Activities that do not fit, and
// whole days beyond params.NumberOfDays, end up in the sidebar pool grouped
// by category id. An empty itinerary yields an empty result, not an error.
func (f *Formatter) BuildCalendarEvents(days []DayPlan, params BuildParams) BuildResult {
	result := BuildResult{
		SidebarEvents: make(map[int][]trip.SidebarEvent),
	}
	if len(days) == 0 {
		log.Debug("no itinerary days to format")
		result.Categories = category.Defaults()
		translateCategories(result.Categories, params.Locale)
		return result
	}

	// Upstream day plans are fetched concurrently and joined; order by day
	// index before placement.
	ordered := make([]DayPlan, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Day < ordered[j].Day })

	resolver := category.NewDefaultResolver()
	nextId := 1

	for dayIndex, day := range ordered {
		events := make([]trip.SidebarEvent, 0, len(day.Activities))
		for _, raw := range day.Activities {
			events = append(events, f.Format(raw, nextId, resolver))
			nextId++
		}
		result.AllEvents = append(result.AllEvents, events...)

		if dayIndex >= params.NumberOfDays {
			f.moveToSidebar(&result, events)
			continue
		}

		placed := f.placeDay(&result, events, params.Start, dayIndex)
		f.moveToSidebar(&result, events[placed:])
	}

	result.Categories = resolver.Categories()
	translateCategories(result.Categories, params.Locale)
	return result
}

// placeDay assigns start/end times to as many of the day's events as fit in
// the window and returns how many were placed.
func (f *Formatter) placeDay(result *BuildResult, events []trip.SidebarEvent, tripStart time.Time, dayIndex int) int {
	if len(events) == 0 {
		return 0
	}

	dayStart := hourOfDay(tripStart, dayIndex, f.cfg.DayStartHour)
	dayEnd := hourOfDay(tripStart, dayIndex, f.cfg.DayEndHour)
	windowMinutes := int(dayEnd.Sub(dayStart).Minutes())

	totalDurationMinutes := 0
	for _, e := range events {
		totalDurationMinutes += int(e.Duration.ToTimeDuration().Minutes())
	}
	// The gap budget is fixed for the whole day; only the divisor shrinks as
	// events are placed.
	availableGapMinutes := windowMinutes - totalDurationMinutes
	if availableGapMinutes < 0 {
		availableGapMinutes = 0
	}

	cursor := dayStart
	var lastEnd time.Time
	for i, event := range events {
		start := cursor.Round(placementGrid)
		if start.Before(lastEnd) {
			// Nearest-grid rounding must never pull an event under its
			// predecessor.
			start = roundUpToGrid(lastEnd)
		}
		if !start.Before(dayEnd) {
			log.Debugf("day %d window exhausted after %d of %d events", dayIndex, i, len(events))
			return i
		}

		scheduled := event.Schedule(start)
		result.CalendarEvents = append(result.CalendarEvents, scheduled)
		lastEnd = scheduled.End

		if i < len(events)-1 {
			gap := f.sampleGap(availableGapMinutes, len(events)-i-1)
			cursor = scheduled.End.Add(gap)
		}
	}
	return len(events)
}

// sampleGap draws a uniform gap in [MinGapMinutes, MaxGapMinutes], clamps it
// to the remaining per-event budget, and rounds the result up to the grid.
func (f *Formatter) sampleGap(availableGapMinutes, remainingEvents int) time.Duration {
	gapMinutes := f.cfg.MinGapMinutes + f.rand.IntN(f.cfg.MaxGapMinutes-f.cfg.MinGapMinutes+1)
	budget := availableGapMinutes / remainingEvents
	if gapMinutes > budget {
		gapMinutes = budget
	}
	return roundUpMinutesToGrid(gapMinutes)
}

func (f *Formatter) moveToSidebar(result *BuildResult, events []trip.SidebarEvent) {
	for _, e := range events {
		result.SidebarEvents[e.CategoryID] = append(result.SidebarEvents[e.CategoryID], e)
	}
}

func translateCategories(categories []trip.Category, locale string) {
	for i := range categories {
		categories[i].Title = category.Translate(categories[i].Title, locale)
	}
}

func hourOfDay(tripStart time.Time, dayIndex, hour int) time.Time {
	day := tripStart.AddDate(0, 0, dayIndex)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

func roundUpToGrid(t time.Time) time.Time {
	rounded := t.Truncate(placementGrid)
	if rounded.Before(t) {
		rounded = rounded.Add(placementGrid)
	}
	return rounded
}

func roundUpMinutesToGrid(minutes int) time.Duration {
	grid := int(placementGrid.Minutes())
	return time.Duration((minutes+grid-1)/grid*grid) * time.Minute
}
