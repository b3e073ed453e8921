package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"github.com/aokisa/guild-reminder/internal/api/handlers/event"
	"github.com/aokisa/guild-reminder/internal/api/router"
	"github.com/aokisa/guild-reminder/internal/api/server"
	"github.com/aokisa/guild-reminder/internal/config"
	"github.com/aokisa/guild-reminder/internal/model"
	eventrepo "github.com/aokisa/guild-reminder/internal/repository/event"
	"github.com/aokisa/guild-reminder/internal/scheduler"
	eventsvc "github.com/aokisa/guild-reminder/internal/service/event"
	"github.com/aokisa/guild-reminder/pkg/discord"
)

// eventStore is the repository surface shared by both backends.
type eventStore interface {
	LoadAll(ctx context.Context) ([]model.Event, error)
	LoadGuild(ctx context.Context, guildID string) ([]model.Event, error)
	SaveAll(ctx context.Context, events []model.Event) error
	Add(ctx context.Context, guildID string, ev model.Event) error
	RemoveByOrdinal(ctx context.Context, guildID string, ordinal int) (model.Event, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	var (
		repo eventStore
		db   *dbpg.DB
	)

	switch cfg.Storage.Driver {
	case "postgres":
		opts := &dbpg.Options{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		}

		var err error
		db, err = dbpg.New(cfg.Storage.Postgres.DSN(), nil, opts)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
		}

		repo = eventrepo.NewPostgresRepository(db)
	default:
		repo = eventrepo.NewFileRepository(cfg.Storage.File.Path)
	}

	notifier := discord.NewClient(cfg.Discord.Token)
	service := eventsvc.NewService(repo, cfg.Events.RolloverPast, cfg.Events.DefaultReminders())

	sched := scheduler.New(repo, notifier, scheduler.Config{
		Interval:    cfg.Scheduler.Interval,
		Tolerance:   cfg.Scheduler.Tolerance,
		SendTimeout: cfg.Scheduler.SendTimeout,
	}, cfg.Retry)

	go sched.Run(ctx)

	handler := event.NewHandler(service, val)
	r := router.New(handler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if db != nil {
		if err := db.Master.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close database")
		}
	}
}
