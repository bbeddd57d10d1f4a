package geo

import (
	"math"
	"testing"
)

func TestBoundsOf(t *testing.T) {
	pts := []LatLng{
		{Lat: 10, Lng: -20},
		{Lat: -5, Lng: 40},
		{Lat: 3, Lng: 7},
	}

	b, ok := BoundsOf(pts)
	if !ok {
		t.Fatal("expected bounds for non-empty point set")
	}
	if b.SouthWest.Lat != -5 || b.SouthWest.Lng != -20 {
		t.Errorf("south-west = %v, want {-5 -20}", b.SouthWest)
	}
	if b.NorthEast.Lat != 10 || b.NorthEast.Lng != 40 {
		t.Errorf("north-east = %v, want {10 40}", b.NorthEast)
	}
}

func TestBoundsOfSinglePoint(t *testing.T) {
	b, ok := BoundsOf([]LatLng{{Lat: 59.33, Lng: 18.07}})
	if !ok {
		t.Fatal("expected bounds for a single point")
	}
	if b.SouthWest != b.NorthEast {
		t.Errorf("single point bounds should be degenerate, got %v / %v", b.SouthWest, b.NorthEast)
	}
}

func TestBoundsOfEmpty(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Error("expected ok=false for empty point set")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid", 59.33, 18.07, false},
		{"lat too high", 91, 0, true},
		{"lat too low", -91, 0, true},
		{"lng too high", 0, 181, true},
		{"lng too low", 0, -181, true},
		{"poles and antimeridian", 90, 180, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check(%v, %v) error = %v, wantErr %v", tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestHaversine(t *testing.T) {
	// Stockholm to Gothenburg is roughly 400 km.
	sthlm := LatLng{Lat: 59.3293, Lng: 18.0686}
	gbg := LatLng{Lat: 57.7089, Lng: 11.9746}

	d := Haversine(sthlm, gbg)
	if d < 390000 || d > 410000 {
		t.Errorf("Haversine = %.0f m, want roughly 400 km", d)
	}

	if d := Haversine(sthlm, sthlm); math.Abs(d) > 1e-6 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}
