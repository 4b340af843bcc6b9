package cli

import (
	"fmt"
	"log/slog"

	"github.com/praaatap/gdit.site"
	"github.com/praaatap/gdit.site/internal/config"
	"github.com/praaatap/gdit.site/internal/logging"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/observability"
)

// loadConfig reads the config file and applies the flags that were set on top of it.
func loadConfig(opts RunOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if opts.Catalog != "" {
		cfg.Catalog = opts.Catalog
	}
	if opts.Script != "" {
		cfg.Script = opts.Script
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.Speed != 0 {
		cfg.Speed = opts.Speed
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// createLogger configures the application logger. Full-screen modes stay silent
// unless --debug is given, since log lines would tear the UI.
func createLogger(cfg config.Config, opts RunOptions, fullScreen bool) (*slog.Logger, error) {
	if fullScreen && !opts.Debug {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(opts.Stderr, level), nil
}

// createEngine initializes a gdit engine with standard CLI conventions.
func createEngine(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*gdit.Engine, error) {
	all := append([]domain.LifecycleHooks{createDebugHooks(logger)}, hooks...)

	engine, err := gdit.New(
		gdit.WithCatalogFile(cfg.Catalog),
		gdit.WithScriptFile(cfg.Script),
		gdit.WithPlaybackTiming(cfg.Playback),
		gdit.WithAutoplayTiming(cfg.Autoplay),
		gdit.WithSpeed(cfg.Speed),
		gdit.WithSeed(cfg.Seed),
		gdit.WithLogger(logger),
		gdit.WithLifecycleHooks(observability.Chain(all...)),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing gdit: %w", err)
	}
	return engine, nil
}
