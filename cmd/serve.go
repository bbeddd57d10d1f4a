package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rbergstrom/mapview/internal/bridge"
	"github.com/rbergstrom/mapview/internal/config"
	"github.com/rbergstrom/mapview/internal/geo"
	"github.com/rbergstrom/mapview/internal/marker"
	"github.com/rbergstrom/mapview/internal/server"
	"github.com/rbergstrom/mapview/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map locally with a live event bridge",
	Long: `Serves the map document on a local port and bridges marker interaction
events (drag, press, hover) back over a WebSocket. When watching is enabled,
edits to the markers file reload the map in place.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the configured port")
	serveCmd.Flags().Bool("open", false, "open the browser automatically")
	serveCmd.Flags().Bool("no-watch", false, "disable markers file watching")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.Open = true
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}

	markers, err := loadMarkers(cfg, false)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Port: cfg.Port})

	props := propsFromConfig(cfg, markers)
	props.BridgeURL = srv.BridgeURL()
	props.Callbacks = logCallbacks()
	props.OnReady = func() {
		log.Printf("serve: map ready")
	}

	v, err := view.New(srv, props)
	if err != nil {
		return fmt.Errorf("creating map view: %w", err)
	}
	srv.OnMessage(v.HandleMessage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reload markers and push a fresh document when the file changes.
	if cfg.Watch && cfg.MarkersFile != "" {
		go func() {
			err := server.Watch(ctx, cfg.MarkersFile, func() {
				updated, err := marker.LoadFile(cfg.MarkersFile)
				if err != nil {
					log.Printf("serve: reloading markers: %v", err)
					return
				}
				p := v.Props()
				p.Markers = updated
				if err := v.SetProps(p); err != nil {
					log.Printf("serve: updating map: %v", err)
					return
				}
				log.Printf("serve: markers reloaded (%d markers)", len(updated))
			})
			if err != nil {
				log.Printf("serve: watch: %v", err)
			}
		}()
	}

	fmt.Printf("Serving map at %s — press Ctrl+C to stop\n", srv.URL())
	if b, ok := geo.BoundsOf(marker.Positions(markers)); ok && len(markers) > 1 {
		fmt.Printf("%d markers spanning %.1f km\n", len(markers), b.Diagonal()/1000)
	} else {
		fmt.Printf("%d markers\n", len(markers))
	}
	if cfg.Open {
		go server.OpenBrowser(srv.URL())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// propsFromConfig maps the file configuration onto component props.
func propsFromConfig(cfg *config.Config, markers []marker.Marker) view.Props {
	props := view.DefaultProps()
	props.Markers = markers
	props.InitialCenter = cfg.CenterLatLng()
	props.InitialZoom = cfg.Zoom
	props.FitToMarkers = cfg.FitToMarkers
	props.Draggable = cfg.Draggable
	props.TileURL = cfg.TileURL
	props.Attribution = cfg.Attribution
	return props
}

// logCallbacks wires the bridge to the log so `mapview serve` doubles as a
// working demonstration of the event protocol.
func logCallbacks() bridge.Callbacks {
	return bridge.Callbacks{
		OnMarkerDragEnd: func(m marker.Marker) {
			log.Printf("bridge: %s dragged to %.5f, %.5f", markerLabel(m), m.Latitude, m.Longitude)
		},
		OnMarkerPress: func(m marker.Marker) {
			log.Printf("bridge: %s pressed", markerLabel(m))
		},
		OnMarkerHover: func(ev bridge.HoverEvent) {
			if verbose {
				log.Printf("bridge: %s hover %s", markerLabel(ev.Marker), ev.Kind)
			}
		},
	}
}

func markerLabel(m marker.Marker) string {
	if m.Name != "" {
		return fmt.Sprintf("marker %q", m.Name)
	}
	return fmt.Sprintf("marker at %.5f, %.5f", m.Latitude, m.Longitude)
}
