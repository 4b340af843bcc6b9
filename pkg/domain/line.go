package domain

import "time"

// OutputLine is a single immutable line of a simulated terminal transcript.
type OutputLine struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// Line is shorthand for building an OutputLine.
func Line(kind Kind, text string) OutputLine {
	return OutputLine{Kind: kind, Text: text}
}

// IsBlank reports whether the line renders as an empty spacer.
func (l OutputLine) IsBlank() bool {
	return l.Text == ""
}

// ScriptLine is one element of the fixed autoplay script.
type ScriptLine struct {
	Kind Kind
	Text string

	// PostDelay is the pause after the line is revealed before the next one starts.
	// Zero means the player's default line delay.
	PostDelay time.Duration
}

// Output returns the transcript form of the script line.
func (s ScriptLine) Output() OutputLine {
	return OutputLine{Kind: s.Kind, Text: s.Text}
}

// Cursor is the progress pointer of the autoplay engine.
// Line indexes the script, Char counts runes already revealed on a command line.
type Cursor struct {
	Line int `json:"line"`
	Char int `json:"char"`
}
