package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbot/internal/config"
	"eventbot/internal/http-server/handlers/blacklist/addToBlacklist"
	"eventbot/internal/http-server/handlers/blacklist/getBlacklist"
	"eventbot/internal/http-server/handlers/blacklist/removeFromBlacklist"
	"eventbot/internal/http-server/handlers/event/cancelEvent"
	"eventbot/internal/http-server/handlers/event/completeEvent"
	"eventbot/internal/http-server/handlers/event/createEvent"
	"eventbot/internal/http-server/handlers/event/getAllEvents"
	"eventbot/internal/http-server/handlers/event/getEventInfo"
	"eventbot/internal/http-server/handlers/event/joinWaitlist"
	"eventbot/internal/http-server/handlers/event/leaveWaitlist"
	"eventbot/internal/http-server/handlers/event/register"
	"eventbot/internal/http-server/handlers/event/unregister"
	"eventbot/internal/http-server/handlers/event/updateEvent"
	"eventbot/internal/http-server/handlers/event/waitlistPosition"
	"eventbot/internal/http-server/middleware/mwlogger"
	"eventbot/internal/lib/logger/handlers/slogpretty"
	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/notifier/telegram"
	"eventbot/internal/service/ledger"
	"eventbot/internal/service/reminder"
	"eventbot/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event bot", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	notifier := telegram.New(cfg.Telegram.Token)

	registrations := ledger.New(log, storage, storage, storage, storage, notifier)

	dispatcher := reminder.New(log, storage, notifier, cfg.Reminders.Interval, cfg.Reminders.Tolerance)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/events", func(r chi.Router) {
		r.Post("/", createEvent.New(log, storage))
		r.Get("/", getAllEvents.New(log, storage))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getEventInfo.New(log, storage))
			r.Put("/", updateEvent.New(log, storage))
			r.Post("/complete", completeEvent.New(log, storage))
			r.Post("/cancel", cancelEvent.New(log, registrations))

			r.Post("/register", register.New(log, registrations))
			r.Post("/unregister", unregister.New(log, registrations))
			r.Post("/waitlist", joinWaitlist.New(log, registrations))
			r.Delete("/waitlist", leaveWaitlist.New(log, registrations))
			r.Get("/waitlist/position", waitlistPosition.New(log, registrations))

			r.Post("/blacklist", addToBlacklist.New(log, registrations))
			r.Delete("/blacklist", removeFromBlacklist.New(log, registrations))
			r.Get("/blacklist", getBlacklist.New(log, storage))
		})
	})

	router.Post("/blacklist", addToBlacklist.New(log, registrations))
	router.Delete("/blacklist", removeFromBlacklist.New(log, registrations))
	router.Get("/blacklist", getBlacklist.New(log, storage))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	dispatcherDone := make(chan struct{})

	go func() {
		defer close(dispatcherDone)
		dispatcher.Run(dispatcherCtx)
	}()

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	// let the dispatcher finish its in-flight batch
	cancelDispatcher()
	<-dispatcherDone

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
