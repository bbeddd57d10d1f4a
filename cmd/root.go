package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rbergstrom/mapview/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mapview",
	Short: "Embeddable OpenStreetMap view with a host event bridge",
	Long: `mapview renders marker data onto an interactive OpenStreetMap/Leaflet
view hosted in your browser. Marker interactions (drag, press, hover) are
relayed back to the host over a WebSocket bridge. Use it as a library from
Go code, or from this CLI to render and serve marker files directly.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
