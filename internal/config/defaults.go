package config

import "github.com/rbergstrom/mapview/internal/document"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".mapview.yml"

// DefaultConfig returns the built-in defaults: public OSM tiles,
// fit-to-markers on, dragging off.
func DefaultConfig() *Config {
	return &Config{
		TileURL:      document.DefaultTileURL,
		Attribution:  document.DefaultAttribution,
		Port:         8750,
		MarkersFile:  "markers.yml",
		FitToMarkers: true,
		Draggable:    false,
		Zoom:         0,
		Open:         false,
		Watch:        true,
	}
}
