package unregister

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventbot/internal/http-server/handlers/event/unregister/mocks"
	"eventbot/internal/lib/logger/handlers/slogdiscard"
	"eventbot/internal/service/ledger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnregisterHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(m *mocks.Unregistrar)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			eventID:     "1",
			requestBody: `{"username": "@alice"}`,
			mockSetup: func(m *mocks.Unregistrar) {
				m.On("Unregister", mock.Anything, 1, "@alice").Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","available_slots":1}`,
		},
		{
			name:           "Missing event ID",
			eventID:        "",
			requestBody:    `{"username": "@alice"}`,
			mockSetup:      func(m *mocks.Unregistrar) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"event id is required"}`,
		},
		{
			name:           "Invalid event ID format",
			eventID:        "oops",
			requestBody:    `{"username": "@alice"}`,
			mockSetup:      func(m *mocks.Unregistrar) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        "1",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.Unregistrar) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Event not found",
			eventID:     "99",
			requestBody: `{"username": "@alice"}`,
			mockSetup: func(m *mocks.Unregistrar) {
				m.On("Unregister", mock.Anything, 99, "@alice").
					Return(0, ledger.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:        "Not registered",
			eventID:     "1",
			requestBody: `{"username": "@alice"}`,
			mockSetup: func(m *mocks.Unregistrar) {
				m.On("Unregister", mock.Anything, 1, "@alice").
					Return(0, ledger.ErrNotRegistered)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"not registered"}`,
		},
		{
			name:        "Internal server error",
			eventID:     "1",
			requestBody: `{"username": "@alice"}`,
			mockSetup: func(m *mocks.Unregistrar) {
				m.On("Unregister", mock.Anything, 1, "@alice").
					Return(0, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to unregister, try again later"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUnregistrar := mocks.NewUnregistrar(t)
			tc.mockSetup(mockUnregistrar)

			handler := New(logger, mockUnregistrar)

			url := "/events/unregister"
			if tc.eventID != "" {
				url = "/events/" + tc.eventID + "/unregister"
			}

			req, err := http.NewRequest("POST", url, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Route("/events", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/unregister", handler)
				})
				r.Post("/unregister", handler)
			})

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")

			mockUnregistrar.AssertExpectations(t)
		})
	}
}
