package script

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/praaatap/gdit.site/pkg/domain"
)

type fileLine struct {
	Kind  string        `mapstructure:"kind"`
	Text  string        `mapstructure:"text"`
	Delay time.Duration `mapstructure:"delay"`
}

type file struct {
	Lines []fileLine `mapstructure:"lines"`
}

// DurationHook decodes duration strings ("300ms") into time.Duration and rejects bare
// numbers, which would otherwise be read as nanoseconds.
func DurationHook() mapstructure.DecodeHookFunc {
	durationType := reflect.TypeOf(time.Duration(0))
	var rejectNumbers mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}
		switch from.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return nil, fmt.Errorf("duration %v has no unit, write it as \"%vms\" or similar", data, data)
		}
		return data, nil
	}
	return mapstructure.ComposeDecodeHookFunc(rejectNumbers, mapstructure.StringToTimeDurationHookFunc())
}

// LoadFile reads an autoplay script from YAML. Delays are duration strings ("300ms").
func LoadFile(path string) ([]domain.ScriptLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes an autoplay script document.
func Parse(data []byte) ([]domain.ScriptLine, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse script yaml: %w", err)
	}

	var f file
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: DurationHook(),
		Result:     &f,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if len(f.Lines) == 0 {
		return nil, domain.ErrEmptyScript
	}

	lines := make([]domain.ScriptLine, len(f.Lines))
	for i, l := range f.Lines {
		kind, err := domain.ParseKind(l.Kind)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", i, err)
		}
		lines[i] = domain.ScriptLine{Kind: kind, Text: l.Text, PostDelay: l.Delay}
	}
	return lines, nil
}
