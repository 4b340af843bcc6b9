package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praaatap/gdit.site/internal/presentation/tui"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/runner"
)

// RunTry opens the interactive demo terminal: the bubbletea widget on a TTY,
// otherwise a line-oriented text or JSON session.
func RunTry(ctx context.Context, opts RunOptions) error {
	opts = opts.withDefaults()
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	useTUI := fullScreen(opts)
	logger, err := createLogger(cfg, opts, useTUI)
	if err != nil {
		return err
	}
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	s := engine.NewSession(clock.NewReal())
	defer s.Reset()
	logger.Info("Session Created", "commands", engine.Catalog().Len())

	var runErr error
	if useTUI {
		runErr = tui.RunInteractive(sigCtx, s, tea.WithInput(opts.Stdin), tea.WithOutput(opts.Stdout))
	} else {
		if !opts.quiet() {
			tui.PrintBanner(opts.Stdout)
		}
		r := runner.NewRunner(createRunnerOptions(logger, opts)...)
		runErr = r.Run(sigCtx, s)
	}

	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	logCompletion(opts.Stdout, "Session", runErr, opts.quiet() || useTUI, sigCtx.Signal())
	return handleExecutionError(runErr)
}
