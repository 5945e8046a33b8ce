// Package bootstrap wires configuration into a runnable application.
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/specforge/adapters/catalog"
	"github.com/artpar/specforge/adapters/clock"
	httpapi "github.com/artpar/specforge/adapters/http"
	"github.com/artpar/specforge/adapters/idgen"
	"github.com/artpar/specforge/adapters/metrics"
	"github.com/artpar/specforge/adapters/schemafile"
	"github.com/artpar/specforge/adapters/specdir"
	"github.com/artpar/specforge/app"
	"github.com/artpar/specforge/config"
	"github.com/artpar/specforge/ports"
)

// App is the assembled application.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Generator *app.Generator
	Catalog   ports.Catalog
	Store     ports.SpecStore
	Server    *httpapi.Server
}

// New builds the application from configuration.
func New(cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg.Logging)

	var cat ports.Catalog
	if cfg.Output.Catalog != "" {
		db, err := catalog.Open(cfg.Output.Catalog)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		cat = db
	}

	var rec ports.MetricsRecorder = ports.NopMetrics{}
	if cfg.Metrics.Enabled {
		rec = metrics.New()
	}

	clk := clock.System{}
	store := specdir.New(cfg.Output.Dir, clk, logger)
	source := schemafile.New(cfg.Schemas.Dir, logger)

	gen := app.NewGenerator(
		source,
		store,
		cat,
		idgen.Variant{},
		clk,
		rec,
		logger,
		app.Options{
			MaxDepth:           cfg.Generator.MaxDepth,
			PromotionThreshold: cfg.Generator.PromotionThreshold,
			Workers:            cfg.Generator.Workers,
		},
	)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Generator: gen,
		Catalog:   cat,
		Store:     store,
	}
	if cfg.Server.Enabled && cat != nil {
		a.Server = httpapi.NewServer(cat, store, logger, cfg.Metrics.Enabled)
	}

	return a, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.Catalog != nil {
		return a.Catalog.Close()
	}
	return nil
}

// NewLogger builds the process logger from config.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
