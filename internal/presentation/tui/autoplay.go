package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praaatap/gdit.site/pkg/script"
)

// FrameRate is how often the autoplay view samples the player.
const FrameRate = 16 * time.Millisecond

type frameMsg time.Time

// Autoplay is the bubbletea model of the landing-page terminal animation.
type Autoplay struct {
	player     *script.Player
	frame      script.Frame
	quitOnDone bool
	height     int
	err        error
}

// NewAutoplay wraps p. When quitOnDone is set the program exits once the script ends;
// otherwise the cursor keeps blinking until a key is pressed.
func NewAutoplay(p *script.Player, quitOnDone bool) *Autoplay {
	return &Autoplay{player: p, frame: p.Snapshot(), quitOnDone: quitOnDone}
}

func tickFrame() tea.Cmd {
	return tea.Tick(FrameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Autoplay) Init() tea.Cmd {
	if err := m.player.Start(); err != nil {
		m.err = err
		return tea.Quit
	}
	return tickFrame()
}

func (m *Autoplay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q", "enter", " ":
			m.player.Stop()
			return m, tea.Quit
		}
		return m, nil
	case frameMsg:
		m.frame = m.player.Snapshot()
		if m.quitOnDone && m.frame.State == script.Done {
			m.player.Stop()
			return m, tea.Quit
		}
		return m, tickFrame()
	}
	return m, nil
}

// Err reports a failure to start the player.
func (m *Autoplay) Err() error {
	return m.err
}

func (m *Autoplay) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("● ● ●  terminal"))
	b.WriteString("\n\n")

	lines := m.frame.Lines
	if m.height > 0 {
		lines = tail(lines, m.height-6)
	}
	for _, line := range lines {
		b.WriteString(RenderLine(line))
		b.WriteByte('\n')
	}

	cursor := " "
	if m.frame.CursorVisible {
		cursor = cursorStyle.Render("▋")
	}
	if m.frame.IsTyping() {
		b.WriteString(promptStyle.Render(Prompt) + commandStyle.Render(m.frame.Typing) + cursor)
	} else {
		b.WriteString(promptStyle.Render(Prompt) + cursor)
	}

	return windowStyle.Render(b.String())
}

// RunAutoplay plays p in a bubbletea program.
func RunAutoplay(ctx context.Context, p *script.Player, quitOnDone bool, opts ...tea.ProgramOption) error {
	m := NewAutoplay(p, quitOnDone)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return m.Err()
}
