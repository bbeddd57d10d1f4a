// Package marker defines the point-of-interest record exchanged between the
// host application and the embedded map, including its JSON wire form.
//
// A marker is an open record: latitude/longitude plus a handful of known
// optional fields, and any number of extra key/value pairs that the host may
// attach. Extra fields are carried through serialization and event delivery
// byte-identical — they are opaque to this package.
package marker

import (
	"encoding/json"

	"github.com/rbergstrom/mapview/internal/geo"
)

// Marker is one point of interest on the map.
type Marker struct {
	Latitude  float64
	Longitude float64

	// Name is shown as the popup label when no Description is set.
	Name string

	// Description is optional Markdown rendered into the marker popup.
	Description string

	// Icon overrides the built-in default glyph. See Resolve for the
	// defaulting rules.
	Icon *Icon

	// Draggable, when present, is OR-ed with the map-wide draggable
	// setting for this marker.
	Draggable *bool

	// Extra holds all fields not recognized above, verbatim.
	Extra map[string]json.RawMessage
}

// knownFields are the keys lifted out of the wire object into struct fields.
var knownFields = []string{"latitude", "longitude", "name", "description", "icon", "draggable"}

// UnmarshalJSON decodes the wire form, splitting known fields from the
// opaque remainder.
func (m *Marker) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["latitude"]; ok {
		if err := json.Unmarshal(raw, &m.Latitude); err != nil {
			return err
		}
	}
	if raw, ok := fields["longitude"]; ok {
		if err := json.Unmarshal(raw, &m.Longitude); err != nil {
			return err
		}
	}
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &m.Name); err != nil {
			return err
		}
	}
	if raw, ok := fields["description"]; ok {
		if err := json.Unmarshal(raw, &m.Description); err != nil {
			return err
		}
	}
	if raw, ok := fields["icon"]; ok {
		m.Icon = &Icon{}
		if err := json.Unmarshal(raw, m.Icon); err != nil {
			return err
		}
	}
	if raw, ok := fields["draggable"]; ok {
		var d bool
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		m.Draggable = &d
	}

	for _, k := range knownFields {
		delete(fields, k)
	}
	if len(fields) > 0 {
		m.Extra = fields
	} else {
		m.Extra = nil
	}
	return nil
}

// MarshalJSON encodes the wire form. Extra fields are emitted exactly as
// they were received.
func (m Marker) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(m.Extra)+len(knownFields))
	for k, v := range m.Extra {
		fields[k] = v
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fields[key] = raw
		return nil
	}

	if err := set("latitude", m.Latitude); err != nil {
		return nil, err
	}
	if err := set("longitude", m.Longitude); err != nil {
		return nil, err
	}
	if m.Name != "" {
		if err := set("name", m.Name); err != nil {
			return nil, err
		}
	}
	if m.Description != "" {
		if err := set("description", m.Description); err != nil {
			return nil, err
		}
	}
	if m.Icon != nil {
		if err := set("icon", m.Icon); err != nil {
			return nil, err
		}
	}
	if m.Draggable != nil {
		if err := set("draggable", *m.Draggable); err != nil {
			return nil, err
		}
	}

	return json.Marshal(fields)
}

// LatLng returns the marker position as a coordinate pair.
func (m Marker) LatLng() geo.LatLng {
	return geo.LatLng{Lat: m.Latitude, Lng: m.Longitude}
}

// DraggableWith reports whether this marker is draggable given the map-wide
// default: true when either the global flag or the marker's own flag is set.
func (m Marker) DraggableWith(global bool) bool {
	return global || (m.Draggable != nil && *m.Draggable)
}

// Positions returns the coordinate pairs of all markers, in order.
func Positions(markers []Marker) []geo.LatLng {
	pts := make([]geo.LatLng, len(markers))
	for i, m := range markers {
		pts[i] = m.LatLng()
	}
	return pts
}
