package dsl

import (
	"fmt"
	"time"

	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/domain"
)

// Builder manages the catalog construction. Commands keep the order they were added in,
// which is also their matching priority.
type Builder struct {
	order       []string
	commands    map[string]*CommandBuilder
	suggestions []string
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		commands: make(map[string]*CommandBuilder),
	}
}

// Add creates a new command in the catalog.
// If the command already exists, it returns the existing builder.
func (b *Builder) Add(command string) *CommandBuilder {
	if cb, ok := b.commands[command]; ok {
		return cb
	}
	cb := &CommandBuilder{
		entry:   catalog.Entry{Command: command},
		builder: b,
	}
	b.commands[command] = cb
	b.order = append(b.order, command)
	return cb
}

// Suggest sets the one-click suggestions, in display order.
func (b *Builder) Suggest(commands ...string) *Builder {
	b.suggestions = append(b.suggestions, commands...)
	return b
}

// Build compiles the commands into a catalog.
func (b *Builder) Build() (*catalog.Catalog, error) {
	entries := make([]catalog.Entry, 0, len(b.order))
	for _, cmd := range b.order {
		entries = append(entries, b.commands[cmd].entry)
	}

	var opts []catalog.Option
	if len(b.suggestions) > 0 {
		opts = append(opts, catalog.WithSuggestions(b.suggestions...))
	}
	c, err := catalog.New(entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return c, nil
}

// ScriptBuilder assembles an autoplay script.
type ScriptBuilder struct {
	lines []domain.ScriptLine
}

// Script creates a new script builder.
func Script() *ScriptBuilder {
	return &ScriptBuilder{}
}

// Type adds a command line that is typed character by character, then waits pause.
func (s *ScriptBuilder) Type(command string, pause time.Duration) *ScriptBuilder {
	return s.Line(domain.KindCommand, command, pause)
}

// Line adds a line of any kind that appears whole, then waits pause.
func (s *ScriptBuilder) Line(kind domain.Kind, text string, pause time.Duration) *ScriptBuilder {
	s.lines = append(s.lines, domain.ScriptLine{Kind: kind, Text: text, PostDelay: pause})
	return s
}

// Build returns the script. An empty script is rejected.
func (s *ScriptBuilder) Build() ([]domain.ScriptLine, error) {
	if len(s.lines) == 0 {
		return nil, domain.ErrEmptyScript
	}
	return s.lines, nil
}
