package getEventInfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventbot/internal/http-server/handlers/event/getEventInfo/mocks"
	"eventbot/internal/lib/logger/handlers/slogdiscard"
	"eventbot/internal/models"
	"eventbot/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	event := &models.Event{
		ID:         1,
		Title:      "Go Meetup",
		Date:       time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
		Capacity:   10,
		Registered: 7,
	}
	participants := []models.Participant{
		{Username: "@alice", Status: models.StatusRegistered},
		{Username: "@bob", Status: models.StatusWaitlist},
	}

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventGetter(t)
		mockGetter.On("GetEvent", mock.Anything, 1).Return(event, nil)
		mockGetter.On("EventParticipants", mock.Anything, 1).Return(participants, nil)

		rr := serve(t, New(logger, mockGetter), "/events/1")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp EventInfoResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, "Go Meetup", resp.Event.Title)
		assert.Equal(t, 3, resp.AvailableSlots)
		assert.Len(t, resp.Participants, 2)
		assert.Equal(t, "@alice", resp.Participants[0].Username)
	})

	t.Run("Unlimited capacity", func(t *testing.T) {
		t.Parallel()

		open := &models.Event{ID: 2, Title: "Open Day", Capacity: 0, Registered: 100}

		mockGetter := mocks.NewEventGetter(t)
		mockGetter.On("GetEvent", mock.Anything, 2).Return(open, nil)
		mockGetter.On("EventParticipants", mock.Anything, 2).Return([]models.Participant{}, nil)

		rr := serve(t, New(logger, mockGetter), "/events/2")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp EventInfoResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		assert.Equal(t, models.UnlimitedSlots, resp.AvailableSlots)
	})

	t.Run("Event not found", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventGetter(t)
		mockGetter.On("GetEvent", mock.Anything, 99).Return(nil, storage.ErrEventNotFound)

		rr := serve(t, New(logger, mockGetter), "/events/99")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"event not found"}`, rr.Body.String())
	})

	t.Run("Invalid event ID format", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventGetter(t)

		rr := serve(t, New(logger, mockGetter), "/events/oops")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"invalid event id format"}`, rr.Body.String())
	})

	t.Run("Participants fetch fails", func(t *testing.T) {
		t.Parallel()

		mockGetter := mocks.NewEventGetter(t)
		mockGetter.On("GetEvent", mock.Anything, 1).Return(event, nil)
		mockGetter.On("EventParticipants", mock.Anything, 1).Return(nil, assert.AnError)

		rr := serve(t, New(logger, mockGetter), "/events/1")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"failed to get event information"}`, rr.Body.String())
	})
}

func serve(t *testing.T, handler http.HandlerFunc, url string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Get("/events/{id}", handler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}
