// Package server wires the Credential Store: configuration, PostgreSQL,
// schema migrations, the account service and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lifemgmt/internal/logging"
	"github.com/dmitrijs2005/lifemgmt/internal/server/config"
	httpapi "github.com/dmitrijs2005/lifemgmt/internal/server/http"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lifemgmt/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// openDB is a seam for tests.
var openDB = repomanager.Open

// NewApp connects to the database, applies migrations and builds the HTTP
// server. The caller owns the returned App and must Run it.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	users := services.NewUserService(db, rm, cfg)
	api := httpapi.New(users, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(cfg.EndpointAddr, api, logger, cfg.ShutdownTimeout),
	}, nil
}

// Run serves until ctx is cancelled and closes the database afterwards.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddr)

	runErr := app.server.Run(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Error closing database", "error", err)
	} else {
		app.logger.Info(ctx, "Database connection closed")
	}

	return runErr
}
