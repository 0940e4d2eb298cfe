// Package geocode turns free-text addresses into coordinates through a
// cascade of pluggable providers.
package geocode

import "context"

// Result is one geocoding outcome. An unmatched query returns a Result
// with Matched false, not an error; errors are reserved for transport and
// service failures.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name,omitempty"`
	Source      string  `json:"source"`
	Matched     bool    `json:"matched"`
}

// Provider represents a single geocoding backend.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, query string) (*Result, error)
	Available() bool
}
