package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/rbergstrom/mapview/internal/geo"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MAPVIEW_*). A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: MAPVIEW_PORT -> port, etc.
	if err := k.Load(env.Provider("MAPVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MAPVIEW_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values. Marker
// data itself is never validated here — only the component's own settings.
func (c *Config) Validate() error {
	if c.TileURL == "" {
		return fmt.Errorf("tile_url is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Zoom < 0 || c.Zoom > 18 {
		return fmt.Errorf("zoom must be between 0 and 18, got %d", c.Zoom)
	}
	switch len(c.Center) {
	case 0:
		// No explicit center.
	case 2:
		if err := geo.Check(c.Center[0], c.Center[1]); err != nil {
			return fmt.Errorf("center: %w", err)
		}
	default:
		return fmt.Errorf("center must be [lat, lng], got %d values", len(c.Center))
	}
	return nil
}

// CenterLatLng returns the explicit center, or nil when unset.
func (c *Config) CenterLatLng() *geo.LatLng {
	if len(c.Center) != 2 {
		return nil
	}
	return &geo.LatLng{Lat: c.Center[0], Lng: c.Center[1]}
}
