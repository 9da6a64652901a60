package cancelEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventbot/internal/lib/api/response"
	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/service/ledger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCanceller
type EventCanceller interface {
	CancelEvent(ctx context.Context, eventID int) error
}

func New(log *slog.Logger, canceller EventCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.cancelEvent.New"

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

		err = canceller.CancelEvent(r.Context(), eventID)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, ledger.ErrEventClosed):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is already completed or cancelled"))
			default:
				log.Error("failed to cancel event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel event"))
			}
			return
		}

		log.Info("event cancelled")

		render.JSON(w, r, response.OK())
	}
}
