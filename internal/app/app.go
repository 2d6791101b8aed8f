// Package app wires the process: config, logger, store client, catalog
// snapshot, engine, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stockpilot/stockpilot/internal/catalog"
	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/engine"
	"github.com/stockpilot/stockpilot/internal/httpapi"
	"github.com/stockpilot/stockpilot/internal/httpapi/handlers"
	"github.com/stockpilot/stockpilot/internal/platform/logger"
	"github.com/stockpilot/stockpilot/internal/store"
)

type App struct {
	Log     *logger.Logger
	Config  *config.Config
	Engine  *engine.Engine
	Catalog *catalog.Snapshot

	server *http.Server
}

// New loads config and fetches the catalog snapshot. A catalog fetch
// failure is fatal: the engine cannot validate items without it.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := store.New(cfg.Store, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init store client: %w", err)
	}

	log.Info("Fetching catalog snapshot...", "store_url", cfg.Store.BaseURL)
	cat, err := catalog.Fetch(ctx, client)
	if err != nil {
		log.Sync()
		return nil, err
	}
	log.Info("Catalog snapshot loaded", "items", cat.Items())

	eng := engine.New(log, client, cat, nil)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		HealthHandler:   handlers.NewHealthHandler(),
		QueryHandler:    handlers.NewQueryHandler(eng),
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
	}, log)

	return &App{
		Log:     log,
		Config:  cfg,
		Engine:  eng,
		Catalog: cat,
		server:  httpapi.NewServer(cfg, router),
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("Server listening", "addr", a.Config.HTTP.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		_ = a.server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
