// Package view is the host-side map component: it owns the configuration,
// regenerates the document when any of it changes, pushes the document to
// an embedded browser surface, and feeds inbound messages to the event
// bridge.
package view

import (
	"encoding/json"
	"sync"

	"github.com/rbergstrom/mapview/internal/bridge"
	"github.com/rbergstrom/mapview/internal/document"
	"github.com/rbergstrom/mapview/internal/geo"
	"github.com/rbergstrom/mapview/internal/marker"
)

// Surface is the embedded-browser hosting primitive the component renders
// into. It is treated as a black box: load a document, and deliver inbound
// string messages back through View.HandleMessage.
type Surface interface {
	LoadDocument(html string) error
}

// Props is the component configuration surface.
type Props struct {
	Markers       []marker.Marker
	InitialCenter *geo.LatLng
	InitialZoom   int
	FitToMarkers  bool
	Draggable     bool

	TileURL     string
	Attribution string
	BridgeURL   string

	Callbacks bridge.Callbacks

	// OnReady fires when the embedded content signals load completion.
	OnReady func()
}

// DefaultProps returns the documented prop defaults: fit-to-markers on,
// dragging off, public OSM tiles.
func DefaultProps() Props {
	return Props{
		FitToMarkers: true,
		TileURL:      document.DefaultTileURL,
		Attribution:  document.DefaultAttribution,
	}
}

// View is one map component instance.
type View struct {
	mu      sync.Mutex
	props   Props
	surface Surface
	bridge  *bridge.Bridge
	loading bool
}

// New creates a view bound to a surface and loads the initial document.
func New(surface Surface, props Props) (*View, error) {
	v := &View{
		surface: surface,
		bridge:  bridge.New(props.Callbacks),
	}
	if err := v.SetProps(props); err != nil {
		return nil, err
	}
	return v, nil
}

// SetProps replaces the configuration and reloads the surface with a freshly
// generated document. There is no incremental patching: the embedded map
// state is rebuilt from scratch on every change, so host-side marker data is
// the single source of truth across reloads.
func (v *View) SetProps(props Props) error {
	v.mu.Lock()
	v.props = props
	v.bridge.SetCallbacks(props.Callbacks)
	v.mu.Unlock()

	html, err := document.Render(document.Options{
		Markers:       props.Markers,
		InitialCenter: props.InitialCenter,
		InitialZoom:   props.InitialZoom,
		FitToMarkers:  props.FitToMarkers,
		Draggable:     props.Draggable,
		TileURL:       props.TileURL,
		Attribution:   props.Attribution,
		BridgeURL:     props.BridgeURL,
	})
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	return v.surface.LoadDocument(html)
}

// Props returns the current configuration.
func (v *View) Props() Props {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.props
}

// Loading reports whether a document load is in flight: true from the
// moment a new document is pushed until the embedded content signals
// readiness. A surface that never finishes loading leaves this set.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// HandleMessage consumes one inbound string message from the surface. The
// mapReady control message clears the loading flag; everything else goes to
// the event bridge, which silently ignores what it does not recognize.
func (v *View) HandleMessage(raw []byte) {
	if isReady(raw) {
		v.mu.Lock()
		v.loading = false
		onReady := v.props.OnReady
		v.mu.Unlock()

		if onReady != nil {
			onReady()
		}
		return
	}
	v.bridge.Dispatch(raw)
}

// readyMessage is the load-completion control frame.
type readyMessage struct {
	Type string `json:"type"`
}

func isReady(raw []byte) bool {
	var msg readyMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return false
	}
	return msg.Type == "mapReady"
}
