package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// tileProviders are the tile sources offered by the wizard. All of them
// are free-to-use with attribution.
var tileProviders = []struct {
	Name        string
	URL         string
	Attribution string
}{
	{
		Name:        "OpenStreetMap Standard",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
	},
	{
		Name:        "OpenTopoMap",
		URL:         "https://tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, SRTM | &copy; <a href="https://opentopomap.org">OpenTopoMap</a>`,
	},
	{
		Name:        "Carto Light",
		URL:         "https://basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
	},
}

// RunWizard runs an interactive configuration wizard, saves the result to
// DefaultConfigFile and returns it.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to mapview! Let's configure your map.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Tile provider selection.
	names := make([]string, len(tileProviders))
	for i, p := range tileProviders {
		names[i] = p.Name
	}
	providerPrompt := promptui.Select{
		Label: "Select tile provider",
		Items: names,
	}
	idx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tile provider selection: %w", err)
	}
	cfg.TileURL = tileProviders[idx].URL
	cfg.Attribution = tileProviders[idx].Attribution

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port to serve on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Markers file.
	markersPrompt := promptui.Prompt{
		Label:   "Markers file (YAML or JSON)",
		Default: cfg.MarkersFile,
	}
	markersFile, err := markersPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("markers file prompt: %w", err)
	}
	cfg.MarkersFile = markersFile

	// 4. Fit to markers.
	fitPrompt := promptui.Select{
		Label: "Fit the initial view to the markers",
		Items: []string{"yes", "no"},
	}
	fitIdx, _, err := fitPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fit prompt: %w", err)
	}
	cfg.FitToMarkers = fitIdx == 0

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)

	return cfg, nil
}
