package waitlistPosition

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

type Response struct {
	response.Response
	Position int `json:"position"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PositionProvider
type PositionProvider interface {
	Position(ctx context.Context, eventID int, username string) (int, error)
}

func New(log *slog.Logger, provider PositionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.waitlistPosition.New"

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

		username := r.URL.Query().Get("username")
		if username == "" {
			log.Error("username is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("username is required"))
			return
		}

		position, err := provider.Position(r.Context(), eventID, username)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrNotWaitlisted):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("not on waitlist"))
			default:
				log.Error("failed to get waitlist position", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get position, try again later"))
			}
			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			Position: position,
		})
	}
}
