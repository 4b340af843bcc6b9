package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/runner"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// fullScreen decides between the bubbletea views and the line runner.
func fullScreen(opts RunOptions) bool {
	return !opts.JSON && !opts.Plain && !opts.Headless && isTerminal(opts.Stdin) && isTerminal(opts.Stdout)
}

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(logger *slog.Logger, opts RunOptions) []runner.Option {
	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
	}

	switch {
	case opts.JSON:
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewJSONHandler(opts.Stdin, opts.Stdout)))
	case opts.Plain:
		runnerOpts = append(runnerOpts, runner.WithInputHandler(
			runner.NewTextHandler(opts.Stdin, opts.Stdout, runner.WithColorProfile(termenv.Ascii)),
		))
	default:
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewTextHandler(opts.Stdin, opts.Stdout)))
	}
	return runnerOpts
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.Debug("Submit", "input", e.Input, "command", e.Command, "matched", e.Matched)
		},
		OnDrop: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.Debug("Submit Dropped (busy)", "input", e.Input)
		},
		OnLine: func(ctx context.Context, e *domain.LineEvent) {
			logger.Debug("Line", "kind", e.Line.Kind, "text", e.Line.Text)
		},
		OnIdle: func(ctx context.Context, e *domain.EventBase) {
			logger.Debug("Idle", "generation", e.Generation)
		},
		OnScriptDone: func(ctx context.Context, e *domain.EventBase) {
			logger.Debug("Script Done")
		},
	}
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, tea.ErrInterrupted)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

func logCompletion(w io.Writer, what string, err error, quiet bool, sig os.Signal) {
	if quiet {
		return
	}
	if err == nil {
		printSystemMessage(w, "%s finished.", what)
		return
	}
	if !isInterrupted(err) {
		return
	}
	switch {
	case sig == os.Interrupt:
		fmt.Fprintf(w, "[CTRL+C]\n")
		printSystemMessage(w, "%s interrupted.", what)
	case sig != nil:
		fmt.Fprintf(w, "\n")
		printSystemMessage(w, "%s terminated.", what)
	default:
		fmt.Fprintf(w, "\n")
		printSystemMessage(w, "%s interrupted.", what)
	}
}
