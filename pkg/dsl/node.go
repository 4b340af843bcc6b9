package dsl

import (
	"github.com/praaatap/gdit.site/pkg/catalog"
	"github.com/praaatap/gdit.site/pkg/domain"
)

// CommandBuilder provides a fluent API for configuring a catalog entry.
type CommandBuilder struct {
	entry   catalog.Entry
	builder *Builder
}

// Describe sets the one-line description shown by help listings.
func (c *CommandBuilder) Describe(text string) *CommandBuilder {
	c.entry.Description = text
	return c
}

// Output appends a plain output line.
func (c *CommandBuilder) Output(text string) *CommandBuilder {
	return c.line(domain.KindOutput, text)
}

// Info appends an info line. Info lines linger longer during playback.
func (c *CommandBuilder) Info(text string) *CommandBuilder {
	return c.line(domain.KindInfo, text)
}

// Success appends a success line.
func (c *CommandBuilder) Success(text string) *CommandBuilder {
	return c.line(domain.KindSuccess, text)
}

// Error appends an error line.
func (c *CommandBuilder) Error(text string) *CommandBuilder {
	return c.line(domain.KindError, text)
}

// Blank appends an empty output line.
func (c *CommandBuilder) Blank() *CommandBuilder {
	return c.line(domain.KindOutput, "")
}

// Add starts the next command on the same catalog.
func (c *CommandBuilder) Add(command string) *CommandBuilder {
	return c.builder.Add(command)
}

// Done returns to the catalog builder.
func (c *CommandBuilder) Done() *Builder {
	return c.builder
}

func (c *CommandBuilder) line(kind domain.Kind, text string) *CommandBuilder {
	c.entry.Lines = append(c.entry.Lines, domain.Line(kind, text))
	return c
}
