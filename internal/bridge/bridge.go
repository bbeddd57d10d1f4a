// Package bridge delivers interaction events from the embedded map to the
// host application's registered callbacks.
//
// The protocol is a closed set of four message kinds flowing one direction
// (embedded content to host), each a single JSON object with a type
// discriminator and the full marker payload. Dispatch is deliberately
// forgiving: malformed payloads and unrecognized types produce no effect
// and no error, and a missing callback makes the matched branch a no-op.
package bridge

import (
	"encoding/json"

	"github.com/rbergstrom/mapview/internal/marker"
)

// Message type discriminators sent by the embedded map.
const (
	TypeMarkerDragEnd    = "markerDragEnd"
	TypeMarkerPress      = "markerPress"
	TypeMarkerHoverStart = "markerHoverStart"
	TypeMarkerHoverEnd   = "markerHoverEnd"
)

// HoverKind distinguishes pointer enter from pointer leave.
type HoverKind string

const (
	HoverEnter HoverKind = "enter"
	HoverLeave HoverKind = "leave"
)

// HoverEvent is the payload delivered to OnMarkerHover.
type HoverEvent struct {
	Marker marker.Marker
	Kind   HoverKind
}

// Callbacks are the host's optional event handlers. Any of them may be nil.
type Callbacks struct {
	// OnMarkerDragEnd receives the marker with its updated coordinates
	// after a drag gesture completes.
	OnMarkerDragEnd func(marker.Marker)

	// OnMarkerPress receives the marker on tap or click.
	OnMarkerPress func(marker.Marker)

	// OnMarkerHover receives pointer enter and leave transitions.
	OnMarkerHover func(HoverEvent)
}

// message is the inbound wire format.
type message struct {
	Type   string        `json:"type"`
	Marker marker.Marker `json:"marker"`
}

// Bridge routes inbound messages to callbacks.
type Bridge struct {
	cb Callbacks
}

// New creates a bridge with the given callbacks.
func New(cb Callbacks) *Bridge {
	return &Bridge{cb: cb}
}

// SetCallbacks replaces the registered callbacks.
func (b *Bridge) SetCallbacks(cb Callbacks) {
	b.cb = cb
}

// Dispatch routes one raw message to the matching callback. Each message
// fires at most one callback; there is no retry, batching or ordering
// guarantee beyond the order Dispatch is called in.
func (b *Bridge) Dispatch(raw []byte) {
	var msg message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}

	switch msg.Type {
	case TypeMarkerDragEnd:
		if b.cb.OnMarkerDragEnd != nil {
			b.cb.OnMarkerDragEnd(msg.Marker)
		}
	case TypeMarkerPress:
		if b.cb.OnMarkerPress != nil {
			b.cb.OnMarkerPress(msg.Marker)
		}
	case TypeMarkerHoverStart:
		if b.cb.OnMarkerHover != nil {
			b.cb.OnMarkerHover(HoverEvent{Marker: msg.Marker, Kind: HoverEnter})
		}
	case TypeMarkerHoverEnd:
		if b.cb.OnMarkerHover != nil {
			b.cb.OnMarkerHover(HoverEvent{Marker: msg.Marker, Kind: HoverLeave})
		}
	}
}
