package resolve

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/width"

	"github.com/portscout/portscout/internal/model"
)

// literalStrategy parses "lat, lon" pasted straight from a map. Full-width
// digits, commas, and spaces from Japanese IMEs are folded to ASCII first.
type literalStrategy struct{}

func (s *literalStrategy) Name() string { return "literal" }

// Applies reports whether the input looks like a bare coordinate pair: it
// has a comma, is not a URL, and carries no CJK script (which marks an
// address, not a number pair).
func (s *literalStrategy) Applies(input string) bool {
	folded := width.Fold.String(input)
	return strings.Contains(folded, ",") &&
		!strings.Contains(folded, "http") &&
		!containsCJK(folded)
}

func (s *literalStrategy) Resolve(_ context.Context, input string) (model.Coordinate, error) {
	folded := width.Fold.String(input)

	latStr, lonStr, found := strings.Cut(folded, ",")
	if !found {
		return model.Coordinate{}, eris.New("resolve: no comma in coordinate input")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return model.Coordinate{}, eris.Wrap(err, "resolve: parse latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return model.Coordinate{}, eris.Wrap(err, "resolve: parse longitude")
	}

	coord := model.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return model.Coordinate{}, eris.Errorf("resolve: coordinate out of range: %s", coord)
	}
	return coord, nil
}

// containsCJK reports whether any rune is Han, Hiragana, or Katakana.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}
