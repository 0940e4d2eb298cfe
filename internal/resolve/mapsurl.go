package resolve

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/portscout/portscout/internal/model"
)

// Extraction patterns for resolved Google Maps URLs, tried in order:
// the "@lat,lon" path segment, a "q=lat,lon" query parameter, and the
// "!3d<lat>!4d<lon>" data parameters.
var (
	atPattern   = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	pairPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)`)
	bangPattern = regexp.MustCompile(`!3d(-?\d+\.\d+).*?!4d(-?\d+\.\d+)`)
)

// mapsURLStrategy unwraps map links, shortened or not, by following
// redirects and pattern-matching the final URL.
type mapsURLStrategy struct {
	urls URLResolver
}

func (s *mapsURLStrategy) Name() string { return "maps-url" }

func (s *mapsURLStrategy) Applies(input string) bool {
	return strings.Contains(input, "http")
}

func (s *mapsURLStrategy) Resolve(ctx context.Context, input string) (model.Coordinate, error) {
	raw := extractURL(input)

	final, err := s.urls.FinalURL(ctx, raw)
	if err != nil {
		return model.Coordinate{}, eris.Wrap(err, "resolve: follow redirects")
	}

	coord, ok := coordinateFromURL(final)
	if !ok {
		return model.Coordinate{}, eris.Errorf("resolve: no coordinate pattern in %s", final)
	}
	return coord, nil
}

// extractURL cuts the URL out of surrounding text: from the first "http"
// to the next whitespace.
func extractURL(input string) string {
	start := strings.Index(input, "http")
	if start < 0 {
		return input
	}
	rest := input[start:]
	if end := strings.IndexFunc(rest, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	}); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// coordinateFromURL applies the extraction patterns in order; the first
// match that yields an in-range coordinate wins.
func coordinateFromURL(resolved string) (model.Coordinate, bool) {
	if m := atPattern.FindStringSubmatch(resolved); m != nil {
		if coord, ok := parsePair(m[1], m[2]); ok {
			return coord, true
		}
	}

	if u, err := url.Parse(resolved); err == nil {
		if q := u.Query().Get("q"); q != "" {
			if m := pairPattern.FindStringSubmatch(strings.TrimSpace(q)); m != nil {
				if coord, ok := parsePair(m[1], m[2]); ok {
					return coord, true
				}
			}
		}
	}

	if m := bangPattern.FindStringSubmatch(resolved); m != nil {
		if coord, ok := parsePair(m[1], m[2]); ok {
			return coord, true
		}
	}

	return model.Coordinate{}, false
}

func parsePair(latStr, lonStr string) (model.Coordinate, bool) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return model.Coordinate{}, false
	}
	coord := model.Coordinate{Lat: lat, Lon: lon}
	return coord, coord.Valid()
}
