package joinWaitlist

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventbot/internal/http-server/handlers/event/joinWaitlist/mocks"
	"eventbot/internal/lib/logger/handlers/slogdiscard"
	"eventbot/internal/service/ledger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJoinWaitlistHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(m *mocks.WaitlistJoiner)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			eventID:     "1",
			requestBody: `{"username": "@carol", "chat_id": 7}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 1, "@carol", int64(7)).Return(2, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","position":2}`,
		},
		{
			name:           "Missing event ID",
			eventID:        "",
			requestBody:    `{"username": "@carol"}`,
			mockSetup:      func(m *mocks.WaitlistJoiner) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"event id is required"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        "1",
			requestBody:    `nope`,
			mockSetup:      func(m *mocks.WaitlistJoiner) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Event not full",
			eventID:     "1",
			requestBody: `{"username": "@carol"}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 1, "@carol", int64(0)).
					Return(0, ledger.ErrNotFull)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"event still has available slots"}`,
		},
		{
			name:        "Already registered",
			eventID:     "1",
			requestBody: `{"username": "@carol"}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 1, "@carol", int64(0)).
					Return(0, ledger.ErrAlreadyRegistered)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"already registered"}`,
		},
		{
			name:        "Already on waitlist",
			eventID:     "1",
			requestBody: `{"username": "@carol"}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 1, "@carol", int64(0)).
					Return(0, ledger.ErrAlreadyWaitlisted)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"already on waitlist"}`,
		},
		{
			name:        "Event not found",
			eventID:     "42",
			requestBody: `{"username": "@carol"}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 42, "@carol", int64(0)).
					Return(0, ledger.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:        "Blacklisted",
			eventID:     "1",
			requestBody: `{"username": "@carol"}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 1, "@carol", int64(0)).
					Return(0, ledger.ErrBlacklisted)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"you are blocked from this event"}`,
		},
		{
			name:        "Internal server error",
			eventID:     "1",
			requestBody: `{"username": "@carol"}`,
			mockSetup: func(m *mocks.WaitlistJoiner) {
				m.On("JoinWaitlist", mock.Anything, 1, "@carol", int64(0)).
					Return(0, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to join waitlist, try again later"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockJoiner := mocks.NewWaitlistJoiner(t)
			tc.mockSetup(mockJoiner)

			handler := New(logger, mockJoiner)

			url := "/events/waitlist"
			if tc.eventID != "" {
				url = "/events/" + tc.eventID + "/waitlist"
			}

			req, err := http.NewRequest("POST", url, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Route("/events", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/waitlist", handler)
				})
				r.Post("/waitlist", handler)
			})

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")

			mockJoiner.AssertExpectations(t)
		})
	}
}
