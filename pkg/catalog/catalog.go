// Package catalog holds the fixed table of recognised commands and their canned output.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/praaatap/gdit.site/pkg/domain"
)

const (
	// HelpCommand lists all canonical commands.
	HelpCommand = "help"
	// ClearCommand is a control signal that empties the transcript.
	ClearCommand = "clear"
)

// Entry maps a canonical command to its ordered output.
type Entry struct {
	Command     string              `json:"command" yaml:"command"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Lines       []domain.OutputLine `json:"lines" yaml:"lines"`
}

// Catalog is an ordered, read-only command table. Declaration order is the
// tie-break when several commands match an input.
type Catalog struct {
	entries     []Entry
	index       map[string]int
	suggestions []string
}

// Option configures a Catalog at construction time.
type Option func(*Catalog)

// WithSuggestions sets the commands offered as one-click suggestions.
func WithSuggestions(cmds ...string) Option {
	return func(c *Catalog) {
		c.suggestions = slices.Clone(cmds)
	}
}

// New builds a catalog from entries in declaration order.
// Command keys are lowercased and trimmed; a clear entry is appended when missing.
func New(entries []Entry, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)+1),
		index:   make(map[string]int, len(entries)+1),
	}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Command))
		if key == "" {
			return nil, fmt.Errorf("catalog entry %d: empty command", len(c.entries))
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateCommand, key)
		}
		e.Command = key
		e.Lines = slices.Clone(e.Lines)
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	if _, ok := c.index[ClearCommand]; !ok {
		c.index[ClearCommand] = len(c.entries)
		c.entries = append(c.entries, Entry{Command: ClearCommand, Description: "Clear terminal"})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup returns the entry for an exact canonical key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	i, ok := c.index[key]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Keys returns the canonical commands in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Command
	}
	return keys
}

// Entries returns a copy of all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		e.Lines = slices.Clone(e.Lines)
		out[i] = e
	}
	return out
}

// Len returns the number of entries, including clear.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Suggestions returns the one-click suggestion commands.
func (c *Catalog) Suggestions() []string {
	return slices.Clone(c.suggestions)
}

// Markdown renders the catalog as a markdown table for documentation views.
func (c *Catalog) Markdown() string {
	var b strings.Builder
	b.WriteString("# Available Commands\n\n")
	b.WriteString("| Command | Description | Lines |\n")
	b.WriteString("|---|---|---|\n")
	for _, e := range c.entries {
		fmt.Fprintf(&b, "| `%s` | %s | %d |\n", e.Command, e.Description, len(e.Lines))
	}
	if len(c.suggestions) > 0 {
		b.WriteString("\nTry: ")
		for i, s := range c.suggestions {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "`%s`", s)
		}
		b.WriteString("\n")
	}
	return b.String()
}
