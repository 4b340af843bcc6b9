package script

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Timing holds the autoplay delays.
type Timing struct {
	StartDelay  time.Duration `mapstructure:"start_delay" yaml:"start_delay"`
	TypeMin     time.Duration `mapstructure:"type_min" yaml:"type_min"`
	TypeMax     time.Duration `mapstructure:"type_max" yaml:"type_max"`
	LineDelay   time.Duration `mapstructure:"line_delay" yaml:"line_delay"`
	BlinkPeriod time.Duration `mapstructure:"blink_period" yaml:"blink_period"`
}

// DefaultTiming mirrors the landing-page animation.
func DefaultTiming() Timing {
	return Timing{
		StartDelay:  800 * time.Millisecond,
		TypeMin:     30 * time.Millisecond,
		TypeMax:     70 * time.Millisecond,
		LineDelay:   100 * time.Millisecond,
		BlinkPeriod: 530 * time.Millisecond,
	}
}

// Scaled returns a copy with every delay divided by speed. Speeds <= 0 are ignored.
func (t Timing) Scaled(speed float64) Timing {
	if speed <= 0 || speed == 1 {
		return t
	}
	scale := func(d time.Duration) time.Duration { return time.Duration(float64(d) / speed) }
	return Timing{
		StartDelay:  scale(t.StartDelay),
		TypeMin:     scale(t.TypeMin),
		TypeMax:     scale(t.TypeMax),
		LineDelay:   scale(t.LineDelay),
		BlinkPeriod: t.BlinkPeriod,
	}
}

// Option defines a functional option for configuring a Player.
type Option func(*Player)

// WithTiming overrides the autoplay delays.
func WithTiming(t Timing) Option {
	return func(p *Player) {
		p.timing = t
	}
}

// WithRand injects the random source used for typing jitter.
func WithRand(r *rand.Rand) Option {
	return func(p *Player) {
		p.rng = r
	}
}

// WithSeed is shorthand for WithRand over a PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithLogger sets a structured logger for the player.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks (OnType, OnLine, OnScriptDone).
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Player) {
		p.hooks = hooks
	}
}

// WithContext sets the context handed to lifecycle hooks.
func WithContext(ctx context.Context) Option {
	return func(p *Player) {
		p.ctx = ctx
	}
}
