package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/praaatap/gdit.site/pkg/domain"
)

// fileLine is the on-disk form of an output line.
type fileLine struct {
	Kind string `mapstructure:"kind"`
	Text string `mapstructure:"text"`
}

type fileEntry struct {
	Command     string     `mapstructure:"command"`
	Description string     `mapstructure:"description"`
	Lines       []fileLine `mapstructure:"lines"`
}

// File is the structure of a catalog file (YAML or JSON).
type File struct {
	Commands    []fileEntry `mapstructure:"commands"`
	Suggestions []string    `mapstructure:"suggestions"`
}

// LoadFile reads a catalog from a YAML or JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return Parse(data, ext == ".json")
}

// Parse decodes catalog data. YAML is the default format.
func Parse(data []byte, isJSON bool) (*Catalog, error) {
	var raw map[string]any
	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
	}

	var f File
	if err := mapstructure.Decode(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	entries := make([]Entry, 0, len(f.Commands))
	for _, fe := range f.Commands {
		lines := make([]domain.OutputLine, 0, len(fe.Lines))
		for _, fl := range fe.Lines {
			kind, err := domain.ParseKind(fl.Kind)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", fe.Command, err)
			}
			lines = append(lines, domain.Line(kind, fl.Text))
		}
		entries = append(entries, Entry{Command: fe.Command, Description: fe.Description, Lines: lines})
	}

	var opts []Option
	if len(f.Suggestions) > 0 {
		opts = append(opts, WithSuggestions(f.Suggestions...))
	}
	return New(entries, opts...)
}
