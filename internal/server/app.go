// Package server wires the federation adapter together: configuration,
// logging, the external-store repository, optional dev-store migrations and
// the HTTP facade, plus graceful shutdown on OS signals.
package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userfed/internal/logging"
	"github.com/dmitrijs2005/userfed/internal/server/config"
	"github.com/dmitrijs2005/userfed/internal/server/db"
	"github.com/dmitrijs2005/userfed/internal/server/httpapi"
	"github.com/dmitrijs2005/userfed/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.Server
}

func NewApp(cfg *config.Config) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repo := users.NewPostgresRepository(cfg.DSN())
	api := httpapi.New(cfg, logger, repo)

	return &App{config: cfg, logger: logger, api: api}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting federation adapter", "provider_id", app.config.ProviderID)

	app.initSignalHandler(cancelFunc)

	if app.config.RunMigrations {
		if err := db.RunMigrations(ctx, app.config.DSN()); err != nil {
			app.logger.Error(ctx, "migrations failed", "error", err)
			return
		}
		app.logger.Info(ctx, "migrations applied")
	}

	if err := app.api.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
	}
}
