package resolve

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/portscout/portscout/internal/model"
	"github.com/portscout/portscout/pkg/geocode"
)

// geocodeStrategy sends the full input to the geocoding cascade and takes
// the best match. Last in the chain; never runs on URL input.
type geocodeStrategy struct {
	client geocode.Client
}

func (s *geocodeStrategy) Name() string { return "geocode" }

func (s *geocodeStrategy) Applies(input string) bool {
	return !strings.Contains(input, "http")
}

func (s *geocodeStrategy) Resolve(ctx context.Context, input string) (model.Coordinate, error) {
	if s.client == nil {
		return model.Coordinate{}, eris.New("resolve: no geocoder configured")
	}

	result, err := s.client.Geocode(ctx, input)
	if err != nil {
		return model.Coordinate{}, eris.Wrap(err, "resolve: geocode")
	}
	if result == nil || !result.Matched {
		return model.Coordinate{}, eris.Errorf("resolve: no geocode match for %q", input)
	}

	coord := model.Coordinate{Lat: result.Latitude, Lon: result.Longitude}
	if !coord.Valid() {
		return model.Coordinate{}, eris.Errorf("resolve: geocoder returned out-of-range coordinate %s", coord)
	}
	return coord, nil
}
