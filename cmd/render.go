package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbergstrom/mapview/internal/document"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the map document to a file or stdout",
	Long: `Generates the self-contained HTML map document from the configured
marker file and writes it out. The document works standalone in any browser;
without a running bridge, interaction events are simply dropped.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output file (defaults to stdout)")
	renderCmd.Flags().String("markers", "", "override the markers file from the config")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	markersFlag, _ := cmd.Flags().GetString("markers")
	required := false
	if markersFlag != "" {
		cfg.MarkersFile = markersFlag
		required = true
	}

	markers, err := loadMarkers(cfg, required)
	if err != nil {
		return err
	}

	html, err := document.Render(document.Options{
		Markers:       markers,
		InitialCenter: cfg.CenterLatLng(),
		InitialZoom:   cfg.Zoom,
		FitToMarkers:  cfg.FitToMarkers,
		Draggable:     cfg.Draggable,
		TileURL:       cfg.TileURL,
		Attribution:   cfg.Attribution,
	})
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(output, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Document written to %s (%d markers)\n", output, len(markers))
	return nil
}
