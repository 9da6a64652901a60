package unregister

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

type Response struct {
	response.Response
	AvailableSlots int `json:"available_slots"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Unregistrar
type Unregistrar interface {
	Unregister(ctx context.Context, eventID int, username string) (int, error)
}

func New(log *slog.Logger, unregistrar Unregistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.unregister.New"

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

		slots, err := unregistrar.Unregister(r.Context(), eventID, req.Username)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, ledger.ErrNotRegistered):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("not registered"))
			default:
				log.Error("failed to unregister", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to unregister, try again later"))
			}
			return
		}

		log.Info("user unregistered", slog.String("username", req.Username))

		render.JSON(w, r, Response{
			Response:       response.OK(),
			AvailableSlots: slots,
		})
	}
}
