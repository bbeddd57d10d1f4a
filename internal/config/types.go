// Package config loads, validates and persists the mapview configuration
// file (.mapview.yml by default), with MAPVIEW_* environment overrides.
package config

// Config is the full mapview configuration.
type Config struct {
	// TileURL is the tile layer URL template ({z}/{x}/{y} placeholders).
	TileURL string `koanf:"tile_url" yaml:"tile_url"`

	// Attribution is the HTML attribution line shown on the map.
	Attribution string `koanf:"attribution" yaml:"attribution"`

	// Port is the local port the map surface is served on.
	Port int `koanf:"port" yaml:"port"`

	// MarkersFile is the YAML or JSON marker list loaded by render/serve.
	MarkersFile string `koanf:"markers_file" yaml:"markers_file"`

	// FitToMarkers sizes the initial view to cover all markers.
	FitToMarkers bool `koanf:"fit_to_markers" yaml:"fit_to_markers"`

	// Draggable enables dragging for all markers by default.
	Draggable bool `koanf:"draggable" yaml:"draggable"`

	// Center is an optional explicit initial center, [lat, lng]. Only
	// used when fitting is off or no markers exist.
	Center []float64 `koanf:"center" yaml:"center,omitempty"`

	// Zoom is the initial zoom used with an explicit center (0 = default).
	Zoom int `koanf:"zoom" yaml:"zoom"`

	// Open launches the default browser when serving starts.
	Open bool `koanf:"open" yaml:"open"`

	// Watch reloads the map when the markers file changes on disk.
	Watch bool `koanf:"watch" yaml:"watch"`
}
