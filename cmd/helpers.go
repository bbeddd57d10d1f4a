package cmd

import (
	"fmt"
	"os"

	"github.com/rbergstrom/mapview/internal/config"
	"github.com/rbergstrom/mapview/internal/marker"
)

// loadConfig reads and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadMarkers reads the marker list named by the config. A missing default
// file yields an empty list; an explicitly requested file must exist.
func loadMarkers(cfg *config.Config, required bool) ([]marker.Marker, error) {
	if cfg.MarkersFile == "" {
		return nil, nil
	}
	if _, err := os.Stat(cfg.MarkersFile); os.IsNotExist(err) {
		if required {
			return nil, fmt.Errorf("markers file not found: %s", cfg.MarkersFile)
		}
		return nil, nil
	}
	return marker.LoadFile(cfg.MarkersFile)
}
