// Package document generates the self-contained HTML document rendered by
// the embedded browser surface: a Leaflet map with a tile layer, clustered
// markers and inline event wiring that forwards interactions to the host
// over the bridge channel.
//
// Generation is a pure function of its options. No marker validation is
// performed; malformed geometry is passed through and the map library's own
// behavior governs the outcome.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/rbergstrom/mapview/internal/geo"
	"github.com/rbergstrom/mapview/internal/marker"
)

// View defaults and fitting parameters.
const (
	// DefaultZoom applies when an explicit center is given without a zoom.
	DefaultZoom = 10

	// WorldZoom is the fallback view when neither markers nor a center
	// are present (centered on 0,0).
	WorldZoom = 2

	// FitMaxZoom caps the zoom chosen by fit-to-markers so tightly
	// clustered or identical markers do not over-zoom.
	FitMaxZoom = 12

	// FitPadding is the visual padding, in pixels, around fitted bounds.
	FitPadding = 24
)

// DefaultTileURL and DefaultAttribution point at the public OSM tile
// servers and satisfy their attribution requirement.
const (
	DefaultTileURL     = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// Options is the full input to document generation.
type Options struct {
	Markers []marker.Marker

	// InitialCenter and InitialZoom select the view when fit-to-markers
	// is off or no markers exist. A nil center falls back to a world
	// view. A zero InitialZoom means unset.
	InitialCenter *geo.LatLng
	InitialZoom   int

	// FitToMarkers sizes the view to cover all markers. Ignored when
	// the marker list is empty.
	FitToMarkers bool

	// Draggable is the map-wide default; individual markers may opt in
	// on their own.
	Draggable bool

	TileURL     string
	Attribution string

	// BridgeURL is the WebSocket endpoint interaction messages are sent
	// to. When empty, messages are silently dropped inside the document.
	BridgeURL string
}

// viewSpec is the resolved initial view, exactly one of the two shapes:
// fitted bounds or an explicit center/zoom.
type viewSpec struct {
	Fit    bool
	Bounds geo.Bounds
	Center geo.LatLng
	Zoom   int
}

// computeView resolves the fitting policy. With markers present and
// fit-to-markers on, the view covers the min/max bounds of all markers;
// otherwise an explicit center applies at the given zoom (default 10), and
// failing that a world view.
func computeView(opts Options) viewSpec {
	if opts.FitToMarkers {
		if b, ok := geo.BoundsOf(marker.Positions(opts.Markers)); ok {
			return viewSpec{Fit: true, Bounds: b}
		}
	}
	if opts.InitialCenter != nil {
		zoom := opts.InitialZoom
		if zoom == 0 {
			zoom = DefaultZoom
		}
		return viewSpec{Center: *opts.InitialCenter, Zoom: zoom}
	}
	return viewSpec{Center: geo.LatLng{}, Zoom: WorldZoom}
}

// markerEntry is one element of the markers array embedded in the document.
// Marker carries the full wire object so callbacks receive extra fields
// untouched; the remaining fields are pre-resolved for rendering.
type markerEntry struct {
	Marker    marker.Marker       `json:"marker"`
	Lat       float64             `json:"lat"`
	Lng       float64             `json:"lng"`
	Popup     string              `json:"popup,omitempty"`
	Draggable bool                `json:"draggable"`
	Icon      marker.ResolvedIcon `json:"icon"`
}

// markdown renders marker descriptions into popup HTML.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// jsString encodes a Go string as a JavaScript string literal.
func jsString(s string) template.JS {
	raw, _ := json.Marshal(s)
	return template.JS(raw)
}

// popupHTML builds the popup content for a marker: rendered Markdown when a
// description exists, otherwise the escaped name.
func popupHTML(m marker.Marker) string {
	if m.Description != "" {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(m.Description), &buf); err == nil {
			return buf.String()
		}
	}
	if m.Name != "" {
		return template.HTMLEscapeString(m.Name)
	}
	return ""
}

// pageData is the template input. String values destined for JavaScript are
// pre-encoded as JSON string literals so the emitted document is stable.
type pageData struct {
	TileURL     template.JS
	Attribution template.JS
	HasBridge   bool
	BridgeURL   template.JS
	MarkersJSON template.JS

	Fit        bool
	SWLat      float64
	SWLng      float64
	NELat      float64
	NELng      float64
	FitPadding int
	FitMaxZoom int

	CenterLat float64
	CenterLng float64
	Zoom      int
}

// Render produces the complete document for the given options.
func Render(opts Options) (string, error) {
	if opts.TileURL == "" {
		opts.TileURL = DefaultTileURL
	}
	if opts.Attribution == "" {
		opts.Attribution = DefaultAttribution
	}

	entries := make([]markerEntry, len(opts.Markers))
	for i, m := range opts.Markers {
		entries[i] = markerEntry{
			Marker:    m,
			Lat:       m.Latitude,
			Lng:       m.Longitude,
			Popup:     popupHTML(m),
			Draggable: m.DraggableWith(opts.Draggable),
			Icon:      marker.Resolve(m.Icon),
		}
	}
	markersJSON, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encoding markers: %w", err)
	}

	data := pageData{
		TileURL:     jsString(opts.TileURL),
		Attribution: jsString(opts.Attribution),
		HasBridge:   opts.BridgeURL != "",
		BridgeURL:   jsString(opts.BridgeURL),
		MarkersJSON: template.JS(markersJSON),
		FitPadding:  FitPadding,
		FitMaxZoom:  FitMaxZoom,
	}

	view := computeView(opts)
	if view.Fit {
		data.Fit = true
		data.SWLat = view.Bounds.SouthWest.Lat
		data.SWLng = view.Bounds.SouthWest.Lng
		data.NELat = view.Bounds.NorthEast.Lat
		data.NELng = view.Bounds.NorthEast.Lng
	} else {
		data.CenterLat = view.Center.Lat
		data.CenterLng = view.Center.Lng
		data.Zoom = view.Zoom
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return buf.String(), nil
}
