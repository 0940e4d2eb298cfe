// Package model defines the data types shared by location resolution,
// scoring, and batch processing.
package model

import "fmt"

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Key returns the coordinate rounded to six decimal places (~0.1m),
// used as the score cache key.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return c.Key()
}
