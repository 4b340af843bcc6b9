package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// Prompt precedes command lines and the input.
const Prompt = "❯ "

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	outputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// LineStyle returns the style for a transcript line of the given kind.
func LineStyle(kind domain.Kind) lipgloss.Style {
	switch kind {
	case domain.KindCommand:
		return commandStyle
	case domain.KindSuccess:
		return successStyle
	case domain.KindError:
		return errorStyle
	case domain.KindInfo:
		return infoStyle
	case domain.KindComment:
		return commentStyle
	default:
		return outputStyle
	}
}

// RenderLine renders one transcript line; command lines get the prompt.
func RenderLine(line domain.OutputLine) string {
	text := LineStyle(line.Kind).Render(line.Text)
	if line.Kind == domain.KindCommand {
		return promptStyle.Render(Prompt) + text
	}
	return text
}

// tail keeps the last n lines; n <= 0 keeps everything.
func tail(lines []domain.OutputLine, n int) []domain.OutputLine {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
