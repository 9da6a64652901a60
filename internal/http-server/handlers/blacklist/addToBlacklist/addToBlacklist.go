package addToBlacklist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventbot/internal/lib/api/response"
	"eventbot/internal/lib/logger/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Username string `json:"username" validate:"required"`
	AddedBy  string `json:"added_by" validate:"required"`
	Reason   string `json:"reason"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Blacklister
type Blacklister interface {
	Blacklist(ctx context.Context, eventID int, username, addedBy, reason string) error
	BlacklistGlobal(ctx context.Context, username, addedBy string) error
}

// New handles both the event-scoped and the global form: requests routed
// without an {id} url parameter bar the user from all events.
func New(log *slog.Logger, blacklister Blacklister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blacklist.addToBlacklist.New"

		log := log.With(slog.String("op", op))

		var (
			eventID int
			err     error
		)
		if eventIDStr := chi.URLParam(r, "id"); eventIDStr != "" {
			eventID, err = strconv.Atoi(eventIDStr)
			if err != nil {
				log.Error("invalid event id format", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid event id format"))
				return
			}
		}

		var req Request

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if eventID != 0 {
			err = blacklister.Blacklist(r.Context(), eventID, req.Username, req.AddedBy, req.Reason)
		} else {
			err = blacklister.BlacklistGlobal(r.Context(), req.Username, req.AddedBy)
		}
		if err != nil {
			log.Error("failed to add to blacklist", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add to blacklist"))
			return
		}

		log.Info("user blacklisted",
			slog.String("username", req.Username),
			slog.Int("event_id", eventID),
		)

		render.JSON(w, r, response.OK())
	}
}
