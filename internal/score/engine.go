// Package score implements the visibility scoring engine: three independent
// checks against OpenStreetMap data, combined into a ranked breakdown.
package score

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/portscout/portscout/internal/model"
	"github.com/portscout/portscout/internal/osm"
)

// Query radii and point values. The transit radius approximates a
// three-minute walk.
const (
	transitRadiusM      = 240
	roadRadiusM         = 100
	rescueRadiusM       = 50
	intersectionRadiusM = 50

	transitPoints      = 3.0
	majorRoadPoints    = 2.0
	mediumRoadPoints   = 1.0
	livingRoadPoints   = 0.5
	intersectionPoints = 1.0

	minIntersectionDegree = 3
)

// GeoData is the OpenStreetMap capability the engine depends on.
// Implemented by *osm.Client; tests substitute deterministic stubs.
type GeoData interface {
	TransitNear(ctx context.Context, pt model.Coordinate, radiusM int) ([]osm.Feature, error)
	RoadsNear(ctx context.Context, pt model.Coordinate, radiusM int, cat osm.RoadCategory) ([]osm.Way, error)
}

// Engine scores coordinates. Identical coordinates hit the cache instead of
// re-querying Overpass; external geo queries are slow and rate-sensitive.
type Engine struct {
	geo   GeoData
	cache Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache replaces the default in-memory breakdown cache. Pass nil to
// disable caching entirely.
func WithCache(c Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// NewEngine creates a scoring engine backed by the given geo data source.
func NewEngine(geo GeoData, opts ...Option) *Engine {
	e := &Engine{geo: geo, cache: NewMemoryCache()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score runs the transit, road, and intersection checks in that order and
// returns the accumulated breakdown. Check failures degrade to their
// zero-contribution finding; Score itself never fails.
func (e *Engine) Score(ctx context.Context, pt model.Coordinate) model.Breakdown {
	key := pt.Key()
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			zap.L().Debug("score cache hit", zap.String("coordinate", key))
			return cached
		}
	}

	b := model.Breakdown{Coordinate: pt}
	for _, check := range []func(context.Context, model.Coordinate) (float64, string){
		e.checkTransit,
		e.checkRoad,
		e.checkIntersection,
	} {
		points, note := check(ctx, pt)
		b.Total += points
		b.Findings = append(b.Findings, note)
	}
	b.Finalize()

	if e.cache != nil {
		e.cache.Set(key, b)
	}
	return b
}

// checkTransit looks for rail or public-transport stations within walking
// distance. Query errors count as "no station found".
func (e *Engine) checkTransit(ctx context.Context, pt model.Coordinate) (float64, string) {
	features, err := e.geo.TransitNear(ctx, pt, transitRadiusM)
	if err != nil {
		zap.L().Debug("transit check degraded", zap.Error(err))
		features = nil
	}
	if len(features) == 0 {
		return 0, "No station within a 3-minute walk (0)"
	}
	return transitPoints, "Station within a 3-minute walk (+3.0): last-mile demand"
}

// checkRoad classifies the nearest road within 100m. A point whose nearest
// way is pedestrian-only gets a rescue attempt: if a major or medium road
// runs within 50m, the point is scored as if it sat on that road. Service
// roads are classified from the original tag and never rescued.
func (e *Engine) checkRoad(ctx context.Context, pt model.Coordinate) (float64, string) {
	ways, err := e.geo.RoadsNear(ctx, pt, roadRadiusM, osm.CategoryAll)
	if err != nil {
		return 0, fmt.Sprintf("Road data unavailable (0): %s", err)
	}
	nearest, _, ok := osm.NearestWay(pt, ways)
	if !ok {
		return 0, "No road found within 100m (0)"
	}

	highway := firstTagValue(nearest.Highway())
	tier := model.TierForHighway(highway)

	rescuedVia := ""
	if tier == model.TierNonVehicle {
		if via, viaTier, rescued := e.rescue(ctx, pt); rescued {
			tier = viaTier
			rescuedVia = via
		}
	}

	switch tier {
	case model.TierMajor:
		if rescuedVia != "" {
			return majorRoadPoints, fmt.Sprintf("Walkway beside a major road (type: %s, road: %s) (+2.0): high visibility", highway, rescuedVia)
		}
		return majorRoadPoints, fmt.Sprintf("On a major road (type: %s) (+2.0): high visibility", highway)
	case model.TierMedium:
		if rescuedVia != "" {
			return mediumRoadPoints, fmt.Sprintf("Walkway beside a through road (type: %s, road: %s) (+1.0): medium visibility", highway, rescuedVia)
		}
		return mediumRoadPoints, fmt.Sprintf("On a through road or bus route (type: %s) (+1.0): medium visibility", highway)
	case model.TierLiving:
		return livingRoadPoints, fmt.Sprintf("Residential street (type: %s) (+0.5): low visibility, residents only", highway)
	case model.TierPrivate:
		label := highway
		if service := nearest.Tags["service"]; service != "" {
			label = highway + "/" + service
		}
		return 0, fmt.Sprintf("On-site path or private drive (type: %s) (0): hard to discover", label)
	case model.TierNonVehicle:
		return 0, fmt.Sprintf("Possible vehicle access problem (type: %s) (0): needs an on-site check", highway)
	default:
		return 0, fmt.Sprintf("Minor road (type: %s) (0)", highway)
	}
}

// rescue re-queries vehicle roads in a tighter radius around a point whose
// nearest way is pedestrian-only. Only major and medium tiers rescue; a
// failed rescue leaves the original classification in place.
func (e *Engine) rescue(ctx context.Context, pt model.Coordinate) (string, model.VisibilityTier, bool) {
	ways, err := e.geo.RoadsNear(ctx, pt, rescueRadiusM, osm.CategoryVehicle)
	if err != nil {
		zap.L().Debug("road rescue degraded", zap.Error(err))
		return "", model.TierUnknown, false
	}
	nearest, _, ok := osm.NearestWay(pt, ways)
	if !ok {
		return "", model.TierUnknown, false
	}

	highway := firstTagValue(nearest.Highway())
	tier := model.TierForHighway(highway)
	if tier != model.TierMajor && tier != model.TierMedium {
		return "", model.TierUnknown, false
	}
	return highway, tier, true
}

// checkIntersection builds the vehicle road graph around the point and
// reads the connectivity degree of the nearest node.
func (e *Engine) checkIntersection(ctx context.Context, pt model.Coordinate) (float64, string) {
	ways, err := e.geo.RoadsNear(ctx, pt, intersectionRadiusM, osm.CategoryVehicle)
	if err != nil {
		zap.L().Debug("intersection check degraded", zap.Error(err))
		ways = nil
	}

	g := osm.BuildGraph(ways)
	g.Simplify()

	node, ok := g.NearestNode(pt)
	if !ok {
		return 0, "Mid-block location, not an intersection (0)"
	}
	degree := g.Degree(node.ID)
	if degree < minIntersectionDegree {
		return 0, "Mid-block location, not an intersection (0)"
	}
	return intersectionPoints, fmt.Sprintf("Intersection or corner lot (connections: %d) (+1.0): exposure to waiting traffic", degree)
}

// firstTagValue returns the first entry of a semicolon-separated tag value.
func firstTagValue(tag string) string {
	if i := strings.IndexByte(tag, ';'); i >= 0 {
		tag = tag[:i]
	}
	return strings.TrimSpace(tag)
}
