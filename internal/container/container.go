package container

import (
	"context"
	"fmt"

	"edustat/adapters/excel"
	"edustat/adapters/report"
	"edustat/adapters/stats/engine"
	"edustat/app"
	"edustat/internal"
	"edustat/internal/config"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Computation
	Engine  *engine.StatsEngine
	Service *app.AnalysisService

	// Adapters
	Reader   *excel.DataReader
	Renderer *report.Renderer

	Session *app.Session
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level)),
	}
	c.initComponents()

	c.Logger.Debug("Container initialized: workers=%d templates=%s output=%s",
		c.Engine.Workers(), cfg.Paths.TemplateDir, cfg.Paths.OutputDir)
	return c, nil
}

// initComponents wires the engine, service and adapters from the configuration
func (c *Container) initComponents() {
	c.Engine = engine.NewStatsEngine(engine.WithWorkers(c.Config.Stats.Workers))
	c.Service = app.NewAnalysisService(c.Engine, c.Logger.With("component", "analysis"))

	c.Reader = excel.NewDataReader(c.Logger.With("component", "reader"))
	c.Renderer = report.NewRenderer(
		report.NewFileTemplateSource(c.Config.Paths.TemplateDir),
		report.UUIDGenerator{},
		c.Logger.With("component", "report"),
	)

	c.Session = app.NewSession(c.Service, c.Reader, c.Renderer)
}

// Shutdown flushes buffered log output
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Logger != nil {
		// stderr sync fails on some terminals; nothing to recover
		_ = c.Logger.Sync()
	}
	return ctx.Err()
}
