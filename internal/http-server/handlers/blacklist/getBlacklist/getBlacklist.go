package getBlacklist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"eventbot/internal/lib/api/response"
	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BlacklistResponse struct {
	response.Response
	Entries []models.BlacklistEntry `json:"entries"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BlacklistProvider
type BlacklistProvider interface {
	EventBlacklist(ctx context.Context, eventID int) ([]models.BlacklistEntry, error)
	GlobalBlacklist(ctx context.Context) ([]models.BlacklistEntry, error)
}

func New(log *slog.Logger, provider BlacklistProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blacklist.getBlacklist.New"

		log := log.With(slog.String("op", op))

		var (
			entries []models.BlacklistEntry
			err     error
		)
		if eventIDStr := chi.URLParam(r, "id"); eventIDStr != "" {
			var eventID int
			eventID, err = strconv.Atoi(eventIDStr)
			if err != nil {
				log.Error("invalid event id format", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid event id format"))
				return
			}
			entries, err = provider.EventBlacklist(r.Context(), eventID)
		} else {
			entries, err = provider.GlobalBlacklist(r.Context())
		}
		if err != nil {
			log.Error("failed to get blacklist", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get blacklist"))
			return
		}

		render.JSON(w, r, BlacklistResponse{
			Response: response.OK(),
			Entries:  entries,
		})
	}
}
