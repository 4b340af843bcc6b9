package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/praaatap/gdit.site/internal/logging"
	"github.com/praaatap/gdit.site/internal/presentation/tui"
)

type commandJSON struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Lines       int    `json:"lines"`
}

// RunCommands prints the command catalog as rendered markdown, plain markdown or JSON.
func RunCommands(ctx context.Context, opts RunOptions) error {
	opts = opts.withDefaults()
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(cfg, logging.NewNop())
	if err != nil {
		return err
	}

	if opts.JSON {
		var out []commandJSON
		for _, e := range engine.Catalog().Entries() {
			out = append(out, commandJSON{Command: e.Command, Description: e.Description, Lines: len(e.Lines)})
		}
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	var render func(string) (string, error)
	if opts.Plain || !isTerminal(opts.Stdout) {
		render = func(s string) (string, error) { return s, nil }
	}
	text, err := tui.RenderCatalog(engine.Catalog(), render)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(opts.Stdout, text)
	return err
}
