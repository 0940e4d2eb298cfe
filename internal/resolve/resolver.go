// Package resolve normalizes heterogeneous location input (raw coordinates,
// Google Maps URLs, free-text addresses) into a coordinate pair.
package resolve

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/portscout/portscout/internal/model"
	"github.com/portscout/portscout/pkg/geocode"
)

// ErrNotResolved is the defined failure for input no strategy could turn
// into a coordinate. Callers treat it as "location not found", never fatal.
var ErrNotResolved = errors.New("location not found")

// Strategy is one way of extracting a coordinate from an input string.
// Applies gates whether the strategy runs at all; a Resolve error passes
// control to the next applicable strategy.
type Strategy interface {
	Name() string
	Applies(input string) bool
	Resolve(ctx context.Context, input string) (model.Coordinate, error)
}

// URLResolver follows redirects and reports the final resolved URL.
// Implemented by fetcher.HTTPFetcher.
type URLResolver interface {
	FinalURL(ctx context.Context, rawURL string) (string, error)
}

// Resolver tries its strategies in order, first success wins. The fallback
// order is fixed: literal coordinates, then maps URLs, then geocoding.
// Geocoding never applies to URL input, so a URL that yields no coordinate
// fails the whole resolution.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the standard strategy chain.
func NewResolver(urls URLResolver, geocoder geocode.Client) *Resolver {
	return &Resolver{
		strategies: []Strategy{
			&literalStrategy{},
			&mapsURLStrategy{urls: urls},
			&geocodeStrategy{client: geocoder},
		},
	}
}

// NewResolverWithStrategies builds a Resolver with an explicit chain.
// Test hook and extension point.
func NewResolverWithStrategies(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve turns input into a coordinate or ErrNotResolved.
func (r *Resolver) Resolve(ctx context.Context, input string) (model.Coordinate, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Coordinate{}, ErrNotResolved
	}

	for _, s := range r.strategies {
		if !s.Applies(input) {
			continue
		}
		coord, err := s.Resolve(ctx, input)
		if err != nil {
			zap.L().Debug("resolve strategy failed",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}
		zap.L().Debug("resolved",
			zap.String("strategy", s.Name()),
			zap.String("coordinate", coord.Key()),
		)
		return coord, nil
	}
	return model.Coordinate{}, ErrNotResolved
}
