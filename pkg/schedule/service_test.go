package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonderplan/wonderplan/internal/config"
	"github.com/wonderplan/wonderplan/internal/event_bus"
	"github.com/wonderplan/wonderplan/pkg/trip"
	"github.com/wonderplan/wonderplan/pkg/user"
)

var tripStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func setupServiceTest(t *testing.T) (*Service, *trip.Service, context.Context) {
	t.Helper()
	trips := trip.NewService(trip.NewRepositoryStub())
	service := NewService(trips, event_bus.NewEventBus(), config.Scheduler{
		DayStartHour:   10,
		DayEndHour:     23,
		HotelStartHour: 8,
		MinGapMinutes:  30,
		MaxGapMinutes:  180,
	})
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "user-1", Username: "traveler"})
	return service, trips, ctx
}

func hotelAndFlightCategories() []trip.Category {
	return []trip.Category{
		{ID: 3, Title: "hotels", Icon: "🏨"},
		{ID: 4, Title: "flights", Icon: "✈️"},
	}
}

func hotelCandidate(id int, title string, duration trip.Duration) trip.SidebarEvent {
	return trip.SidebarEvent{EventDetails: trip.EventDetails{
		ID:         id,
		Title:      title,
		CategoryID: 3,
		Duration:   duration,
	}}
}

func calendarEvent(id int, start, end time.Time) trip.CalendarEvent {
	return trip.CalendarEvent{
		EventDetails: trip.EventDetails{ID: id, Title: "Placed activity", CategoryID: 11, Duration: "01:00"},
		Start:        start,
		End:          end,
	}
}

func storeTrip(t *testing.T, trips *trip.Service, ctx context.Context, toStore trip.Trip) *trip.Trip {
	t.Helper()
	stored, err := trips.CreateTrip(ctx, toStore)
	require.NoError(t, err)
	return stored
}

func TestAutoSchedule_PlacesOneHotelPerDay(t *testing.T) {
	service, trips, ctx := setupServiceTest(t)

	// The last calendar event ends on the second day, so the trip spans three
	// days in total
	stored := storeTrip(t, trips, ctx, trip.Trip{
		Name:       "Paris",
		Categories: hotelAndFlightCategories(),
		CalendarEvents: []trip.CalendarEvent{
			calendarEvent(1, tripStart.Add(34*time.Hour), tripStart.Add(46*time.Hour)),
		},
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {hotelCandidate(10, "Hotel A", "12:00")},
		},
		DateRange: trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 2)},
	})

	result, err := service.AutoSchedule(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, Scheduled, result.Outcome)
	require.Len(t, result.Calendar, 4)

	hotels := result.Calendar[1:]
	for day, hotel := range hotels {
		assert.Equal(t, "Hotel A", hotel.Title)
		assert.Equal(t, tripStart.AddDate(0, 0, day).Add(8*time.Hour), hotel.Start, "day %d start", day)
		assert.Equal(t, tripStart.AddDate(0, 0, day).Add(20*time.Hour), hotel.End, "day %d end", day)
		assert.False(t, hotel.AllDay, "hotels are never all-day")
	}

	// Fresh ids continue from the highest existing id across both pools
	assert.Equal(t, 11, hotels[0].ID)
	assert.Equal(t, 12, hotels[1].ID)
	assert.Equal(t, 13, hotels[2].ID)

	// The scheduled calendar was persisted
	persisted, err := trips.GetTripByUid(ctx, stored.Uid)
	require.NoError(t, err)
	assert.Len(t, persisted.CalendarEvents, 4)
}

func TestAutoSchedule_SecondRunSkips(t *testing.T) {
	service, trips, ctx := setupServiceTest(t)

	storeTrip(t, trips, ctx, trip.Trip{
		Name:       "Paris",
		Categories: hotelAndFlightCategories(),
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {hotelCandidate(10, "Hotel A", "12:00")},
		},
		DateRange: trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 2)},
	})

	first, err := service.AutoSchedule(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, Scheduled, first.Outcome)

	// The second run sees the persisted hotel events and leaves the calendar
	// untouched
	second, err := service.AutoSchedule(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, SkippedAlreadyScheduled, second.Outcome)
	assert.Equal(t, first.Calendar, second.Calendar)
}

func TestAutoSchedule_RoundRobinCandidates(t *testing.T) {
	service, trips, ctx := setupServiceTest(t)

	// Last event ends on day 3, giving a five day trip
	storeTrip(t, trips, ctx, trip.Trip{
		Name:       "Rome",
		Categories: hotelAndFlightCategories(),
		CalendarEvents: []trip.CalendarEvent{
			calendarEvent(1, tripStart.Add(80*time.Hour), tripStart.Add(92*time.Hour)),
		},
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {
				hotelCandidate(20, "Hotel A", "12:00"),
				hotelCandidate(21, "Hotel B", "12:00"),
			},
		},
		DateRange: trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 4)},
	})

	result, err := service.AutoSchedule(ctx, "Rome")
	require.NoError(t, err)
	assert.Equal(t, Scheduled, result.Outcome)
	require.Len(t, result.Calendar, 6)

	wantTitles := []string{"Hotel A", "Hotel B", "Hotel A", "Hotel B", "Hotel A"}
	for day, hotel := range result.Calendar[1:] {
		assert.Equal(t, wantTitles[day], hotel.Title, "day %d", day)
	}
}

func TestAutoSchedule_EmptyCalendarSpansOneDay(t *testing.T) {
	service, trips, ctx := setupServiceTest(t)

	storeTrip(t, trips, ctx, trip.Trip{
		Name:       "Lisbon",
		Categories: hotelAndFlightCategories(),
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {hotelCandidate(1, "Hotel A", "12:00")},
		},
		DateRange: trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 5)},
	})

	result, err := service.AutoSchedule(ctx, "Lisbon")
	require.NoError(t, err)
	assert.Equal(t, Scheduled, result.Outcome)
	require.Len(t, result.Calendar, 1)
	assert.Equal(t, tripStart.Add(8*time.Hour), result.Calendar[0].Start)
}

func TestAutoSchedule_MissingDurationDefaultsToOneHour(t *testing.T) {
	service, trips, ctx := setupServiceTest(t)

	storeTrip(t, trips, ctx, trip.Trip{
		Name:       "Berlin",
		Categories: hotelAndFlightCategories(),
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {hotelCandidate(1, "Hotel A", "")},
		},
		DateRange: trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 1)},
	})

	result, err := service.AutoSchedule(ctx, "Berlin")
	require.NoError(t, err)
	require.Len(t, result.Calendar, 1)
	assert.Equal(t, trip.Duration("01:00"), result.Calendar[0].Duration)
	assert.Equal(t, time.Hour, result.Calendar[0].End.Sub(result.Calendar[0].Start))
}

func TestAutoSchedule_GuardSkips(t *testing.T) {
	tests := []struct {
		name        string
		toStore     trip.Trip
		wantOutcome Outcome
	}{
		{
			name: "missing flights category",
			toStore: trip.Trip{
				Name:       "Madrid",
				Categories: []trip.Category{{ID: 3, Title: "hotels"}},
				SidebarEvents: map[int][]trip.SidebarEvent{
					3: {hotelCandidate(1, "Hotel A", "12:00")},
				},
			},
			wantOutcome: SkippedMissingCategories,
		},
		{
			name: "missing hotels category",
			toStore: trip.Trip{
				Name:       "Madrid",
				Categories: []trip.Category{{ID: 4, Title: "flights"}},
			},
			wantOutcome: SkippedMissingCategories,
		},
		{
			name: "no hotel candidates in the sidebar",
			toStore: trip.Trip{
				Name:          "Madrid",
				Categories:    hotelAndFlightCategories(),
				SidebarEvents: map[int][]trip.SidebarEvent{},
			},
			wantOutcome: SkippedNoCandidates,
		},
		{
			name: "hotel already on the calendar",
			toStore: trip.Trip{
				Name:       "Madrid",
				Categories: hotelAndFlightCategories(),
				CalendarEvents: []trip.CalendarEvent{
					{
						EventDetails: trip.EventDetails{ID: 1, Title: "Hotel A", CategoryID: 3, Duration: "12:00"},
						Start:        tripStart.Add(8 * time.Hour),
						End:          tripStart.Add(20 * time.Hour),
					},
				},
				SidebarEvents: map[int][]trip.SidebarEvent{
					3: {hotelCandidate(2, "Hotel B", "12:00")},
				},
			},
			wantOutcome: SkippedAlreadyScheduled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, trips, ctx := setupServiceTest(t)
			tt.toStore.DateRange = trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 2)}
			stored := storeTrip(t, trips, ctx, tt.toStore)

			result, err := service.AutoSchedule(ctx, "Madrid")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, result.Outcome)

			// Guard skips leave the trip untouched
			persisted, err := trips.GetTripByUid(ctx, stored.Uid)
			require.NoError(t, err)
			assert.Equal(t, len(tt.toStore.CalendarEvents), len(persisted.CalendarEvents))
		})
	}
}

func TestAutoSchedule_HebrewCategoryTitles(t *testing.T) {
	service, trips, ctx := setupServiceTest(t)

	storeTrip(t, trips, ctx, trip.Trip{
		Name: "תל אביב",
		Categories: []trip.Category{
			{ID: 3, Title: "בתי מלון"},
			{ID: 4, Title: "טיסות"},
		},
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {hotelCandidate(1, "מלון דן", "12:00")},
		},
		DateRange: trip.DateRange{Start: tripStart, End: tripStart.AddDate(0, 0, 1)},
	})

	result, err := service.AutoSchedule(ctx, "תל אביב")
	require.NoError(t, err)
	assert.Equal(t, Scheduled, result.Outcome)
	require.Len(t, result.Calendar, 1)
	assert.Equal(t, "מלון דן", result.Calendar[0].Title)
}

func TestAutoSchedule_TripNotFound(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	_, err := service.AutoSchedule(ctx, "does not exist")
	assert.ErrorIs(t, err, trip.ErrTripNotFound)
}

func TestTripDays(t *testing.T) {
	tests := []struct {
		name    string
		lastEnd time.Time
		want    int
	}{
		{"empty calendar", time.Time{}, 1},
		{"ends within the first day", tripStart.Add(22 * time.Hour), 2},
		{"ends exactly at a day boundary", tripStart.Add(48 * time.Hour), 3},
		{"ends on the second day", tripStart.Add(46 * time.Hour), 3},
		{"ends on the fourth day", tripStart.Add(92 * time.Hour), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calendar []trip.CalendarEvent
			if !tt.lastEnd.IsZero() {
				calendar = []trip.CalendarEvent{calendarEvent(1, tripStart, tt.lastEnd)}
			}
			assert.Equal(t, tt.want, tripDays(tripStart, calendar))
		})
	}
}
