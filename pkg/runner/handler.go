package runner

import (
	"context"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Signal names sent through IOHandler.Signal.
const (
	SignalBusy   = "busy"
	SignalIdle   = "idle"
	SignalTyping = "typing"
)

// IOHandler defines the strategy for presenting a simulated terminal.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents lines appended to the transcript.
	Output(ctx context.Context, lines []domain.OutputLine) error

	// Clear is called when the transcript is replaced (clear, reset).
	// The replacement lines follow through Output.
	Clear(ctx context.Context) error

	// Input reads one line from the user.
	Input(ctx context.Context) (string, error)

	// Signal notifies the handler of a transient state (e.g. "busy", "typing").
	// It is used for visual feedback and never changes the transcript.
	Signal(ctx context.Context, name string, args map[string]any) error

	// SystemOutput presents a meta-message that is not part of the transcript.
	SystemOutput(ctx context.Context, msg string) error
}
