package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/script"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

// Runner drives a simulated terminal through an IOHandler.
// This allows for easy testing and integration with different frontends (CLI, JSON pipes).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler over Input/Output is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Headless suppresses system hints (e.g. for piped JSON).
	Headless bool

	// PollInterval is the typing sample rate used by Play.
	PollInterval time.Duration

	Input  io.Reader
	Output io.Writer
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:        os.Stdin,
		Output:       os.Stdout,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		PollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines and submits them to s until EOF, "exit"/"quit", an interrupt or ctx
// cancellation. Each accepted submission is streamed to the handler until the session
// goes idle, so prompts never interleave with playback.
func (r *Runner) Run(ctx context.Context, s *playback.Session) error {
	handler := r.resolveHandler()

	signals := NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	q := transcript.NewQueue()
	remove := s.Listen(q.Push)
	defer remove()

	if err := handler.Output(ctx, s.Lines()); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	if !r.Headless {
		_ = handler.SystemOutput(ctx, `type "exit" to quit`)
	}

	for {
		val, err := handler.Input(ctx)
		if err != nil {
			signals.CheckRace()
			if ctx.Err() != nil {
				r.Logger.Debug("runner input: context cancelled", "err", ctx.Err())
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if val == "exit" || val == "quit" {
			return nil
		}

		if !s.Submit(val) {
			r.Logger.Debug("runner input ignored", "input", val)
			continue
		}
		idle := s.Idle()

		_ = handler.Signal(ctx, SignalBusy, nil)
		if err := r.stream(ctx, q, idle, handler); err != nil {
			return err
		}
		_ = handler.Signal(ctx, SignalIdle, nil)
	}
}

func (r *Runner) stream(ctx context.Context, q *transcript.Queue, idle <-chan struct{}, handler IOHandler) error {
	for {
		select {
		case <-q.Ready():
			if err := r.flush(ctx, q, handler); err != nil {
				return err
			}
		case <-idle:
			return r.flush(ctx, q, handler)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Runner) flush(ctx context.Context, q *transcript.Queue, handler IOHandler) error {
	for _, ev := range q.Drain() {
		if ev.Type == transcript.Replaced {
			if err := handler.Clear(ctx); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		if len(ev.Lines) == 0 {
			continue
		}
		if err := handler.Output(ctx, ev.Lines); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}

// Play starts p and streams it to the handler until the script is exhausted.
// The partially typed line is sampled every PollInterval and sent as a "typing" signal.
// The player is stopped on return, so the cursor blink does not outlive Play.
func (r *Runner) Play(ctx context.Context, p *script.Player) error {
	handler := r.resolveHandler()

	q := transcript.NewQueue()
	remove := p.Listen(q.Push)
	defer remove()

	if err := p.Start(); err != nil {
		return err
	}
	defer p.Stop()

	interval := r.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTyping := ""
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.Done():
			r.Logger.Debug("autoplay finished")
			return r.flush(ctx, q, handler)
		case <-q.Ready():
			if err := r.flush(ctx, q, handler); err != nil {
				return err
			}
			lastTyping = ""
		case <-ticker.C:
			frame := p.Snapshot()
			if !frame.IsTyping() || frame.Typing == lastTyping {
				continue
			}
			if err := r.flush(ctx, q, handler); err != nil {
				return err
			}
			lastTyping = frame.Typing
			_ = handler.Signal(ctx, SignalTyping, map[string]any{
				"prefix": frame.Typing,
				"line":   frame.Cursor.Line,
			})
		}
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Handler != nil {
		return r.Handler
	}
	// Memoize to prevent creating new pumps on subsequent calls.
	r.Handler = NewTextHandler(r.Input, r.Output)
	return r.Handler
}
