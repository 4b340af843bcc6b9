package gdit

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/script"
	"github.com/praaatap/gdit.site/pkg/session"
)

// Version is set at build time with -ldflags "-X github.com/praaatap/gdit.site.Version=...".
var Version = "dev"

// Engine is the high-level entry point for the gdit demo library.
// It holds the immutable catalog and script and builds engines that share them.
type Engine struct {
	catalog        *catalog.Catalog
	script         []domain.ScriptLine
	catalogPath    string
	scriptPath     string
	playbackTiming playback.Timing
	autoplayTiming script.Timing
	speed          float64
	seed           uint64
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	Name           string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog uses an already built catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithCatalogFile loads the catalog from a YAML or JSON file.
func WithCatalogFile(path string) Option {
	return func(e *Engine) {
		e.catalogPath = path
	}
}

// WithScript uses the given autoplay script.
func WithScript(lines []domain.ScriptLine) Option {
	return func(e *Engine) {
		e.script = lines
	}
}

// WithScriptFile loads the autoplay script from a YAML file.
func WithScriptFile(path string) Option {
	return func(e *Engine) {
		e.scriptPath = path
	}
}

// WithPlaybackTiming overrides the interactive playback delays.
func WithPlaybackTiming(t playback.Timing) Option {
	return func(e *Engine) {
		e.playbackTiming = t
	}
}

// WithAutoplayTiming overrides the autoplay delays.
func WithAutoplayTiming(t script.Timing) Option {
	return func(e *Engine) {
		e.autoplayTiming = t
	}
}

// WithSpeed divides every delay by speed. The blink period is left alone.
func WithSpeed(speed float64) Option {
	return func(e *Engine) {
		e.speed = speed
	}
}

// WithSeed fixes the typing jitter of players. Zero means a random seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithLifecycleHooks registers observability hooks on every engine built.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine. Without catalog or script options it uses the
// ones shipped with the site.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		playbackTiming: playback.DefaultTiming(),
		autoplayTiming: script.DefaultTiming(),
		speed:          1,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil && eng.catalogPath != "" {
		c, err := catalog.LoadFile(eng.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		eng.catalog = c
		eng.Name = filepath.Base(eng.catalogPath)
	}
	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}

	if eng.script == nil && eng.scriptPath != "" {
		lines, err := script.LoadFile(eng.scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load script: %w", err)
		}
		eng.script = lines
	}
	if eng.script == nil {
		eng.script = script.DefaultScript()
	}
	if len(eng.script) == 0 {
		return nil, domain.ErrEmptyScript
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("catalog", eng.Name)
	}
	return eng, nil
}

// Catalog returns the command catalog shared by every session.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Script returns the autoplay script.
func (e *Engine) Script() []domain.ScriptLine {
	return e.script
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// PlaybackTiming returns the interactive delays after speed scaling.
func (e *Engine) PlaybackTiming() playback.Timing {
	return e.playbackTiming.Scaled(e.speed)
}

// AutoplayTiming returns the autoplay delays after speed scaling.
func (e *Engine) AutoplayTiming() script.Timing {
	return e.autoplayTiming.Scaled(e.speed)
}

// SessionOptions returns the options NewSession applies, for adapters that build sessions themselves.
func (e *Engine) SessionOptions() []playback.Option {
	return []playback.Option{
		playback.WithTiming(e.PlaybackTiming()),
		playback.WithLogger(e.logger),
		playback.WithLifecycleHooks(e.hooks),
	}
}

// NewSession creates an interactive terminal session on the given scheduler.
func (e *Engine) NewSession(sched clock.Scheduler) *playback.Session {
	return playback.New(e.catalog, sched, e.SessionOptions()...)
}

// SessionFactory adapts NewSession to the session registry.
func (e *Engine) SessionFactory(sched clock.Scheduler) session.Factory {
	return func(id string) *playback.Session {
		opts := append(e.SessionOptions(), playback.WithLogger(e.logger.With("session_id", id)))
		return playback.New(e.catalog, sched, opts...)
	}
}

// NewPlayer creates an autoplay player on the given scheduler.
func (e *Engine) NewPlayer(sched clock.Scheduler) (*script.Player, error) {
	opts := []script.Option{
		script.WithTiming(e.AutoplayTiming()),
		script.WithLogger(e.logger),
		script.WithLifecycleHooks(e.hooks),
	}
	if e.seed != 0 {
		opts = append(opts, script.WithSeed(e.seed))
	}
	return script.New(e.script, sched, opts...)
}
