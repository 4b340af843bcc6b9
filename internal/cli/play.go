package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praaatap/gdit.site/internal/presentation/tui"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/runner"
)

// RunPlay plays the autoplay script. On a TTY the animation keeps blinking after the
// last line until a key is pressed, unless ExitWhenDone is set.
func RunPlay(ctx context.Context, opts RunOptions) error {
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

	p, err := engine.NewPlayer(clock.NewReal())
	if err != nil {
		return err
	}

	var runErr error
	if useTUI {
		runErr = tui.RunAutoplay(sigCtx, p, opts.ExitWhenDone, tea.WithInput(opts.Stdin), tea.WithOutput(opts.Stdout))
	} else {
		r := runner.NewRunner(createRunnerOptions(logger, opts)...)
		runErr = r.Play(sigCtx, p)
	}

	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	logCompletion(opts.Stdout, "Autoplay", runErr, opts.quiet() || useTUI, sigCtx.Signal())
	return handleExecutionError(runErr)
}
