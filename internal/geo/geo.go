// Package geo holds the coordinate and bounding-region types shared by the
// document generator and the CLI.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// EarthRadius is the mean earth radius in meters.
const EarthRadius = 6371000.0

// LatLng is a geographic coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Check returns a descriptive error when the coordinate lies outside the
// WGS84 range. It is used for config and log diagnostics only — marker
// geometry is deliberately never validated before rendering.
func Check(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("invalid latitude: %f (must be between -90 and 90)", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("invalid longitude: %f (must be between -180 and 180)", lng)
	}
	return nil
}

// Bounds is an axis-aligned bounding region over coordinates.
type Bounds struct {
	SouthWest LatLng
	NorthEast LatLng
}

// BoundsOf computes the bounding region covering all points. ok is false
// when pts is empty.
func BoundsOf(pts []LatLng) (b Bounds, ok bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}

	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = orb.Point{p.Lng, p.Lat}
	}
	bound := mp.Bound()

	return Bounds{
		SouthWest: LatLng{Lat: bound.Min.Y(), Lng: bound.Min.X()},
		NorthEast: LatLng{Lat: bound.Max.Y(), Lng: bound.Max.X()},
	}, true
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Diagonal returns the distance in meters across a bounding region.
func (b Bounds) Diagonal() float64 {
	return Haversine(b.SouthWest, b.NorthEast)
}
