// Package geo resolves the device's position and nearby places. The Provider
// interface keeps pages independent of the mapping vendor; the AMap REST
// implementation lives alongside.
package geo

import "context"

// Fix is a resolved coordinate.
type Fix struct {
	Latitude  float64
	Longitude float64
}

// Place is a point of interest near a coordinate.
type Place struct {
	Name     string
	Address  string
	Distance string // meters, as reported
	Fix      Fix
}

// Provider resolves locations and places.
type Provider interface {
	// Locate returns a coarse device fix (IP-based).
	Locate(ctx context.Context) (Fix, error)
	// ReverseGeocode names the area around a coordinate.
	ReverseGeocode(ctx context.Context, fix Fix) (string, error)
	// SearchNearby finds places matching keyword around a coordinate.
	SearchNearby(ctx context.Context, fix Fix, keyword string) ([]Place, error)
}
