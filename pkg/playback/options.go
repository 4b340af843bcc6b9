package playback

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Timing holds the playback delays. Only their relative order matters to the effect:
// info lines linger longer than the rest.
type Timing struct {
	InfoDelay     time.Duration `mapstructure:"info_delay" yaml:"info_delay"`
	LineDelay     time.Duration `mapstructure:"line_delay" yaml:"line_delay"`
	ClearDelay    time.Duration `mapstructure:"clear_delay" yaml:"clear_delay"`
	NotFoundDelay time.Duration `mapstructure:"not_found_delay" yaml:"not_found_delay"`
}

// DefaultTiming mirrors the site's widget.
func DefaultTiming() Timing {
	return Timing{
		InfoDelay:     300 * time.Millisecond,
		LineDelay:     80 * time.Millisecond,
		ClearDelay:    100 * time.Millisecond,
		NotFoundDelay: 100 * time.Millisecond,
	}
}

// Scaled returns a copy with every delay divided by speed. Speeds <= 0 are ignored.
func (t Timing) Scaled(speed float64) Timing {
	if speed <= 0 || speed == 1 {
		return t
	}
	scale := func(d time.Duration) time.Duration { return time.Duration(float64(d) / speed) }
	return Timing{
		InfoDelay:     scale(t.InfoDelay),
		LineDelay:     scale(t.LineDelay),
		ClearDelay:    scale(t.ClearDelay),
		NotFoundDelay: scale(t.NotFoundDelay),
	}
}

// DelayFor returns the wait before a line of the given kind is appended.
func (t Timing) DelayFor(kind domain.Kind) time.Duration {
	if kind == domain.KindInfo {
		return t.InfoDelay
	}
	return t.LineDelay
}

// WelcomeBanner seeds a new session.
var WelcomeBanner = []domain.OutputLine{
	domain.Line(domain.KindOutput, "👋 Welcome to gdit interactive demo!"),
	domain.Line(domain.KindOutput, "   Type a command or click suggestions below."),
	domain.Line(domain.KindOutput, `   Type "help" for available commands.`),
	domain.Line(domain.KindOutput, ""),
}

// ResetBanner replaces the transcript when the session is reset.
var ResetBanner = []domain.OutputLine{
	domain.Line(domain.KindOutput, "👋 Welcome to gdit interactive demo!"),
	domain.Line(domain.KindOutput, "   Type a command or click suggestions below."),
	domain.Line(domain.KindOutput, ""),
}

// Option defines a functional option for configuring a Session.
type Option func(*Session)

// WithTiming overrides the playback delays.
func WithTiming(t Timing) Option {
	return func(s *Session) {
		s.timing = t
	}
}

// WithLogger sets a structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithWelcome overrides the lines a new session starts with.
func WithWelcome(lines ...domain.OutputLine) Option {
	return func(s *Session) {
		s.welcome = slices.Clone(lines)
	}
}

// WithResetBanner overrides the lines shown after Reset.
func WithResetBanner(lines ...domain.OutputLine) Option {
	return func(s *Session) {
		s.resetBanner = slices.Clone(lines)
	}
}

// WithContext sets the context handed to lifecycle hooks.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.ctx = ctx
	}
}
