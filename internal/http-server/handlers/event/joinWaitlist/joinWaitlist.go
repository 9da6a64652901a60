package joinWaitlist

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
	ChatID   int64  `json:"chat_id"`
}

type Response struct {
	response.Response
	Position int `json:"position"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=WaitlistJoiner
type WaitlistJoiner interface {
	JoinWaitlist(ctx context.Context, eventID int, username string, chatID int64) (int, error)
}

func New(log *slog.Logger, joiner WaitlistJoiner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.joinWaitlist.New"

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

		position, err := joiner.JoinWaitlist(r.Context(), eventID, req.Username, req.ChatID)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, ledger.ErrNotFull):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event still has available slots"))
			case errors.Is(err, ledger.ErrAlreadyRegistered):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("already registered"))
			case errors.Is(err, ledger.ErrAlreadyWaitlisted):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("already on waitlist"))
			case errors.Is(err, ledger.ErrEventClosed):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is completed or cancelled"))
			case errors.Is(err, ledger.ErrBlacklisted):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you are blocked from this event"))
			default:
				log.Error("failed to join waitlist", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to join waitlist, try again later"))
			}
			return
		}

		log.Info("user joined waitlist",
			slog.String("username", req.Username),
			slog.Int("position", position),
		)

		render.JSON(w, r, Response{
			Response: response.OK(),
			Position: position,
		})
	}
}
