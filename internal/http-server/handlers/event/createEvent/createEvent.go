package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventbot/internal/lib/api/response"
	"eventbot/internal/lib/logger/sl"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Capacity    int       `json:"capacity" validate:"min=0"` // 0 means unlimited
}

type EventResponse struct {
	response.Response
	EventID int `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, title, description string, date time.Time, capacity int) (int, error)
}

func New(log *slog.Logger, event EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if !req.Date.After(time.Now()) {
			log.Error("event date is in the past")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event date must be in the future"))

			return
		}

		eventID, err := event.CreateEvent(r.Context(), req.Title, req.Description, req.Date, req.Capacity)
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.Int("id", eventID))

		responseOK(w, r, eventID)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID int) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventID:  eventID,
	})
}
