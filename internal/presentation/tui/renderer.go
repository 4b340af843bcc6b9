package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/praaatap/gdit.site/pkg/catalog"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// RenderCatalog renders the command reference table of c.
func RenderCatalog(c *catalog.Catalog, render func(string) (string, error)) (string, error) {
	if render == nil {
		render = NewRenderer()
	}
	out, err := render(c.Markdown())
	if err != nil {
		return "", fmt.Errorf("failed to render catalog: %w", err)
	}
	return out, nil
}
