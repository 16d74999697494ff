package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonderplan/wonderplan/internal/config"
	"github.com/wonderplan/wonderplan/internal/utils"
	"github.com/wonderplan/wonderplan/pkg/category"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

func testSchedulerConfig() config.Scheduler {
	return config.Scheduler{
		DayStartHour:   10,
		DayEndHour:     23,
		HotelStartHour: 8,
		MinGapMinutes:  30,
		MaxGapMinutes:  180,
	}
}

func newTestFormatter(values ...int) *Formatter {
	return NewFormatter(testSchedulerConfig(), &utils.SequenceRand{Values: values})
}

func activity(title string, durationMin int) RawActivity {
	return RawActivity{Title: title, DurationMin: durationMin}
}

func TestFormat_Defaults(t *testing.T) {
	formatter := newTestFormatter(0)
	resolver := category.NewDefaultResolver()

	// A missing duration defaults to one hour
	event := formatter.Format(RawActivity{Title: "Free morning"}, 1, resolver)
	assert.Equal(t, trip.Duration("01:00"), event.Duration)
	assert.Equal(t, 1, event.ID)
	assert.Nil(t, event.Location)

	// A stated duration is carried over in HH:MM form
	event = formatter.Format(activity("City walk", 90), 2, resolver)
	assert.Equal(t, trip.Duration("01:30"), event.Duration)
}

func TestFormat_CategoryInference(t *testing.T) {
	formatter := newTestFormatter(0)
	resolver := category.NewDefaultResolver()

	hotel := formatter.Format(activity("Check in at the Grand Hotel", 60), 1, resolver)
	assert.Equal(t, 3, hotel.CategoryID)

	flight := formatter.Format(activity("Flight to Rome", 120), 2, resolver)
	assert.Equal(t, 4, flight.CategoryID)

	general := formatter.Format(activity("Free morning", 60), 3, resolver)
	assert.Equal(t, 11, general.CategoryID)
}

func TestFormat_Location(t *testing.T) {
	formatter := newTestFormatter(0)
	resolver := category.NewDefaultResolver()

	event := formatter.Format(RawActivity{
		Title:       "Louvre Museum",
		Address:     "Rue de Rivoli, Paris",
		Lat:         48.8606,
		Lng:         2.3376,
		DurationMin: 120,
	}, 1, resolver)

	require.NotNil(t, event.Location)
	assert.Equal(t, "Rue de Rivoli, Paris", event.Location.Address)
	assert.Equal(t, 48.8606, event.Location.Lat)
}

func TestBuildCalendarEvents_EmptyItinerary(t *testing.T) {
	formatter := newTestFormatter(0)

	result := formatter.BuildCalendarEvents(nil, BuildParams{
		NumberOfDays: 3,
		Start:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Locale:       "he",
	})

	assert.Empty(t, result.AllEvents)
	assert.Empty(t, result.CalendarEvents)
	assert.Empty(t, result.SidebarEvents)

	// Default categories are still returned, translated for the locale
	require.Len(t, result.Categories, 11)
	assert.Equal(t, "אטרקציות", result.Categories[0].Title)
	assert.Equal(t, "בתי מלון", result.Categories[2].Title)
}

func TestBuildCalendarEvents_TwoDayPlacement(t *testing.T) {
	// Gap draws replay 0, so every gap is the 30 minute minimum
	formatter := newTestFormatter(0)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	days := []DayPlan{
		{Day: 0, Activities: []RawActivity{
			activity("Free morning", 60),
			activity("Lunch downtown", 60),
			activity("Old town walk", 60),
		}},
		{Day: 1, Activities: []RawActivity{
			activity("Louvre Museum", 60),
			activity("Dinner cruise", 60),
			activity("Jazz bar", 60),
		}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 2,
		Start:        start,
		Locale:       "en",
	})

	require.Len(t, result.CalendarEvents, 6)
	assert.Len(t, result.AllEvents, 6)
	assert.Empty(t, result.SidebarEvents)

	wantStarts := []time.Time{
		time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 1, 11, 30, 0, 0, time.UTC),
		time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 11, 30, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 13, 0, 0, 0, time.UTC),
	}
	for i, e := range result.CalendarEvents {
		assert.Equal(t, wantStarts[i], e.Start, "event %d start", i)
		assert.Equal(t, wantStarts[i].Add(time.Hour), e.End, "event %d end", i)
		assert.False(t, e.AllDay)
		assert.Equal(t, i+1, e.ID, "ids are sequential across days")
	}
}

func TestBuildCalendarEvents_NoOverlapAndGridAlignment(t *testing.T) {
	// A spread of draws, including ones near the maximum
	formatter := newTestFormatter(7, 149, 42, 13, 150, 99, 0, 88)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	days := []DayPlan{
		{Day: 0, Activities: []RawActivity{
			activity("Breakfast cafe", 45),
			activity("Harbor ferry", 90),
			activity("Street market", 60),
			activity("Sunset viewpoint", 30),
		}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 1,
		Start:        start,
	})

	dayStart := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)

	var prevEnd time.Time
	for i, e := range result.CalendarEvents {
		assert.False(t, e.Start.Before(dayStart), "event %d starts before the day window", i)
		assert.True(t, e.Start.Before(dayEnd), "event %d starts after the day window", i)
		assert.False(t, e.Start.Before(prevEnd), "event %d overlaps its predecessor", i)
		assert.Zero(t, e.Start.Sub(dayStart)%(15*time.Minute), "event %d start off the grid", i)
		prevEnd = e.End
	}
}

func TestBuildCalendarEvents_GapCappedByRemainingBudget(t *testing.T) {
	// The draw asks for the 180 minute maximum, but only 120 minutes of gap
	// budget exist for the day
	formatter := newTestFormatter(150)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	days := []DayPlan{
		{Day: 0, Activities: []RawActivity{
			activity("Full day trek", 600),
			activity("Late dinner", 60),
		}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 1,
		Start:        start,
	})

	require.Len(t, result.CalendarEvents, 2)

	trek := result.CalendarEvents[0]
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), trek.Start)
	assert.Equal(t, time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC), trek.End)
	assert.True(t, trek.AllDay, "events of 8 hours or more are all-day")

	dinner := result.CalendarEvents[1]
	assert.Equal(t, time.Date(2026, 6, 1, 22, 0, 0, 0, time.UTC), dinner.Start)
	assert.Equal(t, time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC), dinner.End)
	assert.False(t, dinner.AllDay)
}

func TestBuildCalendarEvents_WindowExhaustedMovesToSidebar(t *testing.T) {
	formatter := newTestFormatter(0)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	days := []DayPlan{
		{Day: 0, Activities: []RawActivity{
			activity("Marathon day tour", 780),
			activity("Dinner at a local restaurant", 60),
		}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 1,
		Start:        start,
	})

	require.Len(t, result.CalendarEvents, 1)
	assert.Equal(t, "Marathon day tour", result.CalendarEvents[0].Title)

	// The dinner did not fit and lands in the sidebar under its category
	foodCategory := 2
	require.Len(t, result.SidebarEvents[foodCategory], 1)
	assert.Equal(t, "Dinner at a local restaurant", result.SidebarEvents[foodCategory][0].Title)

	// AllEvents still holds the full pool
	assert.Len(t, result.AllEvents, 2)
}

func TestBuildCalendarEvents_DaysBeyondLimitStayInSidebar(t *testing.T) {
	formatter := newTestFormatter(0)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	days := []DayPlan{
		{Day: 0, Activities: []RawActivity{activity("Old town walk", 60)}},
		{Day: 1, Activities: []RawActivity{activity("Grand Hotel check-in", 60)}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 1,
		Start:        start,
	})

	require.Len(t, result.CalendarEvents, 1)
	assert.Equal(t, "Old town walk", result.CalendarEvents[0].Title)

	hotelCategory := 3
	require.Len(t, result.SidebarEvents[hotelCategory], 1)
	assert.Equal(t, "Grand Hotel check-in", result.SidebarEvents[hotelCategory][0].Title)
	assert.Len(t, result.AllEvents, 2)
}

func TestBuildCalendarEvents_OrdersDayPlans(t *testing.T) {
	formatter := newTestFormatter(0)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Upstream day plans arrive out of order
	days := []DayPlan{
		{Day: 1, Activities: []RawActivity{activity("Second day walk", 60)}},
		{Day: 0, Activities: []RawActivity{activity("First day walk", 60)}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 2,
		Start:        start,
	})

	require.Len(t, result.CalendarEvents, 2)
	assert.Equal(t, "First day walk", result.CalendarEvents[0].Title)
	assert.Equal(t, 1, result.CalendarEvents[0].ID)
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), result.CalendarEvents[0].Start)
	assert.Equal(t, "Second day walk", result.CalendarEvents[1].Title)
	assert.Equal(t, time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC), result.CalendarEvents[1].Start)
}

func TestBuildCalendarEvents_TranslatesCategories(t *testing.T) {
	formatter := newTestFormatter(0)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	days := []DayPlan{
		{Day: 0, Activities: []RawActivity{activity("Grand Hotel check-in", 60)}},
	}

	result := formatter.BuildCalendarEvents(days, BuildParams{
		NumberOfDays: 1,
		Start:        start,
		Locale:       "he",
	})

	require.Len(t, result.Categories, 11)
	assert.Equal(t, "בתי מלון", result.Categories[2].Title)
	assert.Equal(t, "טיסות", result.Categories[3].Title)
}
