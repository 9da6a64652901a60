package removeFromBlacklist

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
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Username string `json:"username" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Unblacklister
type Unblacklister interface {
	Unblacklist(ctx context.Context, eventID int, username string) error
	UnblacklistGlobal(ctx context.Context, username string) error
}

func New(log *slog.Logger, unblacklister Unblacklister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blacklist.removeFromBlacklist.New"

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
			err = unblacklister.Unblacklist(r.Context(), eventID, req.Username)
		} else {
			err = unblacklister.UnblacklistGlobal(r.Context(), req.Username)
		}
		if err != nil {
			if errors.Is(err, ledger.ErrNotBlacklisted) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user is not blacklisted"))
				return
			}

			log.Error("failed to remove from blacklist", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove from blacklist"))
			return
		}

		log.Info("user removed from blacklist",
			slog.String("username", req.Username),
			slog.Int("event_id", eventID),
		)

		render.JSON(w, r, response.OK())
	}
}
