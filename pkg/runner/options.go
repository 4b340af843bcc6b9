package runner

import (
	"log/slog"
	"time"
)

// DefaultPollInterval is how often Play samples the typing line.
const DefaultPollInterval = 15 * time.Millisecond

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless suppresses the system hints printed around a session.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithPollInterval sets how often Play samples the player for typing progress.
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.PollInterval = d
	}
}
