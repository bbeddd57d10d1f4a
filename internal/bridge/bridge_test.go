package bridge

import (
	"encoding/json"
	"testing"

	"github.com/rbergstrom/mapview/internal/marker"
)

// recorder collects every callback invocation for assertions.
type recorder struct {
	dragEnds []marker.Marker
	presses  []marker.Marker
	hovers   []HoverEvent
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnMarkerDragEnd: func(m marker.Marker) { r.dragEnds = append(r.dragEnds, m) },
		OnMarkerPress:   func(m marker.Marker) { r.presses = append(r.presses, m) },
		OnMarkerHover:   func(ev HoverEvent) { r.hovers = append(r.hovers, ev) },
	}
}

func (r *recorder) total() int {
	return len(r.dragEnds) + len(r.presses) + len(r.hovers)
}

func TestDispatchPress(t *testing.T) {
	var rec recorder
	b := New(rec.callbacks())

	b.Dispatch([]byte(`{"type":"markerPress","marker":{"latitude":1,"longitude":2,"name":"X"}}`))

	if len(rec.presses) != 1 {
		t.Fatalf("presses = %d, want 1", len(rec.presses))
	}
	m := rec.presses[0]
	if m.Latitude != 1 || m.Longitude != 2 || m.Name != "X" {
		t.Errorf("marker = %+v, want lat 1, lng 2, name X", m)
	}
	if len(rec.dragEnds) != 0 || len(rec.hovers) != 0 {
		t.Error("press must not invoke drag-end or hover callbacks")
	}
}

func TestDispatchDragEnd(t *testing.T) {
	var rec recorder
	b := New(rec.callbacks())

	b.Dispatch([]byte(`{"type":"markerDragEnd","marker":{"latitude":5.5,"longitude":-6.5,"venueId":"abc"}}`))

	if len(rec.dragEnds) != 1 {
		t.Fatalf("dragEnds = %d, want 1", len(rec.dragEnds))
	}
	m := rec.dragEnds[0]
	if m.Latitude != 5.5 || m.Longitude != -6.5 {
		t.Errorf("updated position = %v, %v, want 5.5, -6.5", m.Latitude, m.Longitude)
	}
	if string(m.Extra["venueId"]) != `"abc"` {
		t.Errorf("extra field = %s, want \"abc\"", m.Extra["venueId"])
	}
}

func TestDispatchHover(t *testing.T) {
	var rec recorder
	b := New(rec.callbacks())

	b.Dispatch([]byte(`{"type":"markerHoverStart","marker":{"latitude":1,"longitude":2}}`))
	b.Dispatch([]byte(`{"type":"markerHoverEnd","marker":{"latitude":1,"longitude":2}}`))

	if len(rec.hovers) != 2 {
		t.Fatalf("hovers = %d, want 2", len(rec.hovers))
	}
	if rec.hovers[0].Kind != HoverEnter {
		t.Errorf("first hover kind = %q, want %q", rec.hovers[0].Kind, HoverEnter)
	}
	if rec.hovers[1].Kind != HoverLeave {
		t.Errorf("second hover kind = %q, want %q", rec.hovers[1].Kind, HoverLeave)
	}
}

func TestDispatchUnknownType(t *testing.T) {
	var rec recorder
	b := New(rec.callbacks())

	b.Dispatch([]byte(`{"type":"unknown","marker":{"latitude":1,"longitude":2}}`))

	if rec.total() != 0 {
		t.Errorf("unknown type invoked %d callbacks, want 0", rec.total())
	}
}

func TestDispatchMalformed(t *testing.T) {
	var rec recorder
	b := New(rec.callbacks())

	// None of these may panic or invoke a callback.
	for _, raw := range []string{"", "not json", "[]", `{"type":123}`, `{"marker":{}}`} {
		b.Dispatch([]byte(raw))
	}
	if rec.total() != 0 {
		t.Errorf("malformed input invoked %d callbacks, want 0", rec.total())
	}
}

func TestDispatchNilCallbacks(t *testing.T) {
	b := New(Callbacks{})

	// Missing callbacks are no-ops, never an error.
	b.Dispatch([]byte(`{"type":"markerPress","marker":{"latitude":1,"longitude":2}}`))
	b.Dispatch([]byte(`{"type":"markerDragEnd","marker":{"latitude":1,"longitude":2}}`))
	b.Dispatch([]byte(`{"type":"markerHoverStart","marker":{"latitude":1,"longitude":2}}`))
}

func TestDispatchRoundTripPayload(t *testing.T) {
	original := marker.Marker{Latitude: 1, Longitude: 2}
	original.Extra = map[string]json.RawMessage{
		"tags": json.RawMessage(`["a","b"]`),
	}

	// Simulate what the embedded content sends after a drag: same object,
	// new coordinates.
	moved := original
	moved.Latitude = 3
	moved.Longitude = 4
	payload, err := json.Marshal(struct {
		Type   string        `json:"type"`
		Marker marker.Marker `json:"marker"`
	}{Type: TypeMarkerDragEnd, Marker: moved})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var rec recorder
	b := New(rec.callbacks())
	b.Dispatch(payload)

	if len(rec.dragEnds) != 1 {
		t.Fatalf("dragEnds = %d, want 1", len(rec.dragEnds))
	}
	got := rec.dragEnds[0]
	if got.Latitude != 3 || got.Longitude != 4 {
		t.Errorf("position = %v, %v, want 3, 4", got.Latitude, got.Longitude)
	}
	if string(got.Extra["tags"]) != `["a","b"]` {
		t.Errorf("tags = %s, want [\"a\",\"b\"] byte-identical", got.Extra["tags"])
	}
}
