// Package bootstrap is the composition root. Keep construction/wiring here so
// module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	rosterservice "postmatch/contexts/matchday/roster-service"
	rosterpostgres "postmatch/contexts/matchday/roster-service/adapters/postgres"
	votingengine "postmatch/contexts/matchday/voting-engine"
	votingpostgres "postmatch/contexts/matchday/voting-engine/adapters/postgres"
	"postmatch/internal/platform/config"
	"postmatch/internal/platform/db"
	"postmatch/internal/platform/httpserver"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel).With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("postgres_dsn is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Votes:    votingRepo,
		Sessions: votingRepo,
		Matches:  votingRepo,
		Players:  votingRepo,
		Voters:   votingRepo,
		Clock:    votingpostgres.SystemClock{},
		IDGen:    votingpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	rosterRepo := rosterpostgres.NewRepository(pg.DB, logger)
	rosterModule := rosterservice.NewModule(rosterservice.Dependencies{
		Repo:   rosterRepo,
		Clock:  votingpostgres.SystemClock{},
		IDGen:  votingpostgres.UUIDGenerator{},
		Logger: logger,
	})

	server := httpserver.New(votingModule, rosterModule, cfg.AdminEmail, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
