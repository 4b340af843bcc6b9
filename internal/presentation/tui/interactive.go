package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/transcript"
)

// changedMsg reports that the session transcript or busy flag may have changed.
type changedMsg struct{}

// Interactive is the bubbletea model of the interactive terminal widget.
type Interactive struct {
	session *playback.Session
	changes chan struct{}
	remove  func()

	input   textinput.Model
	spinner spinner.Model

	lines      []domain.OutputLine
	busy       bool
	width      int
	height     int
	nextTab    int
	suggestion []string
}

// NewInteractive creates the model and subscribes to s.
func NewInteractive(s *playback.Session) *Interactive {
	in := textinput.New()
	in.Prompt = Prompt
	in.PromptStyle = promptStyle
	in.TextStyle = commandStyle
	in.Placeholder = "Type a command..."
	in.CharLimit = 256
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	m := &Interactive{
		session:    s,
		changes:    make(chan struct{}, 1),
		input:      in,
		spinner:    sp,
		suggestion: s.Suggestions(),
	}
	m.remove = s.Listen(func(transcript.Event) { m.notify() })
	m.refresh()
	return m
}

func (m *Interactive) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Interactive) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return changedMsg{}
	}
}

func (m *Interactive) refresh() {
	snap := m.session.Snapshot()
	m.lines = snap.Lines
	m.busy = snap.Busy
}

func (m *Interactive) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForChange())
}

func (m *Interactive) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case changedMsg:
		m.refresh()
		return m, m.waitForChange()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "esc":
			m.Close()
			return m, tea.Quit
		case "ctrl+r":
			m.session.Reset()
			m.refresh()
			return m, nil
		case "ctrl+l":
			m.submit("clear")
			return m, nil
		case "tab":
			if len(m.suggestion) > 0 {
				m.input.SetValue(m.suggestion[m.nextTab%len(m.suggestion)])
				m.input.CursorEnd()
				m.nextTab++
			}
			return m, nil
		case "enter":
			m.submit(m.input.Value())
			return m, nil
		case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9":
			i := int(key[len(key)-1] - '1')
			if m.session.SubmitSuggestion(i) {
				m.input.Reset()
			}
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the input to the session. Busy submissions are dropped, like the widget
// does, but the typed text is kept so it can be sent again.
func (m *Interactive) submit(raw string) {
	if m.session.Submit(raw) {
		m.input.Reset()
		m.nextTab = 0
	}
	m.refresh()
}

// Close unsubscribes from the session.
func (m *Interactive) Close() {
	if m.remove != nil {
		m.remove()
		m.remove = nil
	}
}

func (m *Interactive) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("● gdit-demo"))
	b.WriteString("\n\n")

	visible := m.lines
	if m.height > 0 {
		visible = tail(m.lines, m.height-8)
	}
	for _, line := range visible {
		b.WriteString(RenderLine(line))
		b.WriteByte('\n')
	}

	if m.busy {
		b.WriteString(m.spinner.View())
	} else {
		b.WriteString(m.input.View())
	}

	body := windowStyle.Render(b.String())
	if m.width > 0 {
		body = windowStyle.Width(m.width - 2).Render(b.String())
	}

	chips := make([]string, 0, len(m.suggestion))
	for i, s := range m.suggestion {
		chips = append(chips, suggestionStyle.Render(fmt.Sprintf("alt+%d ▶ %s", i+1, s)))
	}
	footer := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{hintStyle.Render("Try: ")}, chips...)...)
	help := hintStyle.Render("tab complete • ctrl+l clear • ctrl+r reset • esc quit")

	return lipgloss.JoinVertical(lipgloss.Left, body, footer, help)
}

// RunInteractive runs the interactive widget until the user quits or ctx is done.
func RunInteractive(ctx context.Context, s *playback.Session, opts ...tea.ProgramOption) error {
	m := NewInteractive(s)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
