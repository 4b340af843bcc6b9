// Package transcript holds the rendered history of a simulated terminal session.
package transcript

import (
	"slices"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// EventType describes how a transcript changed.
type EventType string

const (
	Appended EventType = "appended"
	Replaced EventType = "replaced"
)

// Event is emitted to listeners after every mutation.
// For Appended, Lines holds only the new lines; for Replaced, the whole new buffer.
type Event struct {
	Type    EventType           `json:"type"`
	Lines   []domain.OutputLine `json:"lines"`
	Version uint64              `json:"version"`
}

// Listener receives transcript events.
type Listener func(Event)

// Transcript is an append-only sequence of lines that can only otherwise be replaced
// as a whole. It is not safe for concurrent use; the owning engine serialises access.
type Transcript struct {
	lines     []domain.OutputLine
	version   uint64
	listeners map[uint64]Listener
	nextID    uint64
}

// New creates a transcript seeded with the given lines.
func New(seed ...domain.OutputLine) *Transcript {
	return &Transcript{
		lines:     slices.Clone(seed),
		listeners: make(map[uint64]Listener),
	}
}

// Append adds lines to the end of the transcript.
func (t *Transcript) Append(lines ...domain.OutputLine) {
	if len(lines) == 0 {
		return
	}
	t.lines = append(t.lines, lines...)
	t.version++
	t.emit(Event{Type: Appended, Lines: slices.Clone(lines), Version: t.version})
}

// Replace swaps the whole buffer, e.g. on clear or reset.
func (t *Transcript) Replace(lines ...domain.OutputLine) {
	t.lines = slices.Clone(lines)
	t.version++
	t.emit(Event{Type: Replaced, Lines: slices.Clone(lines), Version: t.version})
}

// Lines returns a copy of the current buffer.
func (t *Transcript) Lines() []domain.OutputLine {
	return slices.Clone(t.lines)
}

// Len returns the number of lines.
func (t *Transcript) Len() int {
	return len(t.lines)
}

// Version increases by one on every mutation.
func (t *Transcript) Version() uint64 {
	return t.version
}

// Listen registers fn for future events and returns a function that removes it.
func (t *Transcript) Listen(fn Listener) (remove func()) {
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		delete(t.listeners, id)
	}
}

func (t *Transcript) emit(e Event) {
	for _, fn := range t.listeners {
		fn(e)
	}
}

// Texts returns only the text of each line, handy for comparisons.
func Texts(lines []domain.OutputLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
