package addToBlacklist

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventbot/internal/http-server/handlers/blacklist/addToBlacklist/mocks"
	"eventbot/internal/lib/logger/handlers/slogdiscard"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddToBlacklistHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		url            string
		requestBody    string
		mockSetup      func(m *mocks.Blacklister)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Event scoped",
			url:         "/events/1/blacklist",
			requestBody: `{"username": "@spammer", "added_by": "@admin", "reason": "spam"}`,
			mockSetup: func(m *mocks.Blacklister) {
				m.On("Blacklist", mock.Anything, 1, "@spammer", "@admin", "spam").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:        "Global",
			url:         "/blacklist",
			requestBody: `{"username": "@spammer", "added_by": "@admin"}`,
			mockSetup: func(m *mocks.Blacklister) {
				m.On("BlacklistGlobal", mock.Anything, "@spammer", "@admin").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Invalid event ID format",
			url:            "/events/bad/blacklist",
			requestBody:    `{"username": "@spammer", "added_by": "@admin"}`,
			mockSetup:      func(m *mocks.Blacklister) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:           "Missing username",
			url:            "/events/1/blacklist",
			requestBody:    `{"added_by": "@admin"}`,
			mockSetup:      func(m *mocks.Blacklister) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Username is a required field"}`,
		},
		{
			name:        "Internal server error",
			url:         "/events/1/blacklist",
			requestBody: `{"username": "@spammer", "added_by": "@admin"}`,
			mockSetup: func(m *mocks.Blacklister) {
				m.On("Blacklist", mock.Anything, 1, "@spammer", "@admin", "").
					Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to add to blacklist"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockBlacklister := mocks.NewBlacklister(t)
			tc.mockSetup(mockBlacklister)

			handler := New(logger, mockBlacklister)

			req, err := http.NewRequest("POST", tc.url, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Post("/events/{id}/blacklist", handler)
			router.Post("/blacklist", handler)

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")

			mockBlacklister.AssertExpectations(t)
		})
	}
}
