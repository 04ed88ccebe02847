// Package app wires configuration, the generation gateway client and the
// persistence store into one application value. Dependencies are passed
// explicitly; nothing here is an ambient global.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"

	"github.com/vibespecs/vibespecs/internal/config"
	"github.com/vibespecs/vibespecs/internal/gateway"
	"github.com/vibespecs/vibespecs/internal/store"
)

// App holds the initialized subsystems. Gateway is nil when no credential
// is configured; Store is nil when no database URL is configured.
type App struct {
	Config  *config.Config
	Gateway *gateway.Client
	Store   *store.Store

	db *sql.DB
}

// New builds the application from configuration. A missing gateway
// credential is not fatal here: offline commands (export, sample) still
// work, and callers that need generation surface the NotConfigured error.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if cfg.Gateway.APIKey != "" {
		client, err := gateway.NewClient(gateway.Options{
			APIKey:           cfg.Gateway.APIKey,
			BaseURL:          cfg.Gateway.BaseURL,
			Model:            cfg.Gateway.Model,
			RequestTimeoutMs: cfg.Gateway.RequestTimeoutMs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gateway client: %w", err)
		}
		a.Gateway = client
	} else {
		log.Warn("no gateway API key configured; generation is disabled")
	}

	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.Store = store.New(db)
		if err := a.Store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		log.Info("database connected")
	}

	return a, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
