package completeEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventbot/internal/lib/api/response"
	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCompleter
type EventCompleter interface {
	CompleteEvent(ctx context.Context, id int) error
}

func New(log *slog.Logger, completer EventCompleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.completeEvent.New"

		log := log.With(slog.String("op", op))

		eventIDStr := chi.URLParam(r, "id")
		if eventIDStr == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		eventID, err := strconv.Atoi(eventIDStr)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int("event_id", eventID))

		err = completer.CompleteEvent(r.Context(), eventID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrEventClosed):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is already completed or cancelled"))
			default:
				log.Error("failed to complete event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to complete event"))
			}
			return
		}

		log.Info("event completed")

		render.JSON(w, r, response.OK())
	}
}
