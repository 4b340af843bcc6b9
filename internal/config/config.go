// Package config loads the demo's settings: timings, asset paths and server knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/praaatap/gdit.site/pkg/playback"
	"github.com/praaatap/gdit.site/pkg/script"
)

// Config is the full set of knobs accepted by gdit-demo.
type Config struct {
	LogLevel    string          `mapstructure:"log_level"`
	Catalog     string          `mapstructure:"catalog"`
	Script      string          `mapstructure:"script"`
	Seed        uint64          `mapstructure:"seed"`
	Speed       float64         `mapstructure:"speed"`
	Addr        string          `mapstructure:"addr"`
	MaxSessions int             `mapstructure:"max_sessions"`
	IdleTTL     time.Duration   `mapstructure:"idle_ttl"`
	Playback    playback.Timing `mapstructure:"playback"`
	Autoplay    script.Timing   `mapstructure:"autoplay"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Speed:       1,
		Addr:        ":8080",
		MaxSessions: 256,
		IdleTTL:     30 * time.Minute,
		Playback:    playback.DefaultTiming(),
		Autoplay:    script.DefaultTiming(),
	}
}

// Load reads a YAML config file on top of Default. An empty path yields the defaults.
// Durations are written as strings ("300ms").
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode merges a YAML document into cfg. Keys absent from the document keep their value.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  script.DurationHook(),
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg.Validate()
}

// Validate rejects settings the engines cannot honour.
func (c Config) Validate() error {
	if c.Autoplay.TypeMax < c.Autoplay.TypeMin {
		return fmt.Errorf("autoplay.type_max (%s) is below autoplay.type_min (%s)", c.Autoplay.TypeMax, c.Autoplay.TypeMin)
	}
	if c.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %v", c.Speed)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must not be negative, got %d", c.MaxSessions)
	}
	if c.IdleTTL < 0 {
		return fmt.Errorf("idle_ttl must not be negative, got %s", c.IdleTTL)
	}
	return nil
}
