package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonderplan/wonderplan/internal/config"
	"github.com/wonderplan/wonderplan/internal/event_bus"
	"github.com/wonderplan/wonderplan/pkg/trip"
	"github.com/wonderplan/wonderplan/pkg/user"
)

func setupHandlerTest(t *testing.T) (*Handler, *trip.Service, context.Context) {
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
	return NewHandler(service), trips, ctx
}

func postAutoSchedule(handler *Handler, ctx context.Context, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auto-schedule", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.AutoSchedule(w, req.WithContext(ctx))
	return w
}

func TestAutoScheduleHandler_MissingTripName(t *testing.T) {
	handler, _, ctx := setupHandlerTest(t)

	w := postAutoSchedule(handler, ctx, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response AutoScheduleResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "tripName is required", response.Message)
}

func TestAutoScheduleHandler_InvalidBody(t *testing.T) {
	handler, _, ctx := setupHandlerTest(t)

	w := postAutoSchedule(handler, ctx, `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutoScheduleHandler_TripNotFound(t *testing.T) {
	handler, _, ctx := setupHandlerTest(t)

	w := postAutoSchedule(handler, ctx, `{"tripName": "unknown"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response AutoScheduleResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "trip not found", response.Message)
}

func TestAutoScheduleHandler_SkipReported(t *testing.T) {
	handler, trips, ctx := setupHandlerTest(t)

	// No flight or hotel categories at all
	_, err := trips.CreateTrip(ctx, trip.Trip{
		Name:       "Paris",
		Categories: []trip.Category{{ID: 11, Title: "general"}},
	})
	require.NoError(t, err)

	w := postAutoSchedule(handler, ctx, `{"tripName": "Paris"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response AutoScheduleResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, string(SkippedMissingCategories), response.Skipped)
	assert.NotEmpty(t, response.Message)
	assert.Empty(t, response.ScheduledTrip)
}

func TestAutoScheduleHandler_Success(t *testing.T) {
	handler, trips, ctx := setupHandlerTest(t)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := trips.CreateTrip(ctx, trip.Trip{
		Name: "Paris",
		Categories: []trip.Category{
			{ID: 3, Title: "hotels"},
			{ID: 4, Title: "flights"},
		},
		SidebarEvents: map[int][]trip.SidebarEvent{
			3: {{EventDetails: trip.EventDetails{ID: 1, Title: "Hotel A", CategoryID: 3, Duration: "12:00"}}},
		},
		DateRange: trip.DateRange{Start: start, End: start.AddDate(0, 0, 2)},
	})
	require.NoError(t, err)

	w := postAutoSchedule(handler, ctx, `{"tripName": "Paris"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var response AutoScheduleResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Empty(t, response.Skipped)
	require.Len(t, response.ScheduledTrip, 1)
	assert.Equal(t, "Hotel A", response.ScheduledTrip[0].Title)
	assert.False(t, response.ScheduledTrip[0].AllDay)
}
