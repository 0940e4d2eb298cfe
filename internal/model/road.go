package model

import "strings"

// VisibilityTier classifies the nearest road by how visible a parked
// scooter on it would be to passersby.
type VisibilityTier string

const (
	TierMajor      VisibilityTier = "major"       // arterial roads
	TierMedium     VisibilityTier = "medium"      // through roads, bus routes
	TierLiving     VisibilityTier = "living"      // residential streets
	TierPrivate    VisibilityTier = "private"     // service roads, private drives
	TierNonVehicle VisibilityTier = "non_vehicle" // footways, paths, stairs
	TierUnknown    VisibilityTier = "unknown"
)

// highwayTiers maps OSM highway tag values to visibility tiers.
var highwayTiers = map[string]VisibilityTier{
	"motorway":      TierMajor,
	"trunk":         TierMajor,
	"primary":       TierMajor,
	"secondary":     TierMajor,
	"tertiary":      TierMedium,
	"residential":   TierLiving,
	"unclassified":  TierLiving,
	"living_street": TierLiving,
	"service":       TierPrivate,
	"pedestrian":    TierNonVehicle,
	"footway":       TierNonVehicle,
	"path":          TierNonVehicle,
	"steps":         TierNonVehicle,
	"cycleway":      TierNonVehicle,
}

// TierForHighway maps an OSM highway tag value to a VisibilityTier.
// Multi-value tags ("primary;secondary") use the first value.
func TierForHighway(tag string) VisibilityTier {
	if i := strings.IndexByte(tag, ';'); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.TrimSpace(tag)
	if tier, ok := highwayTiers[tag]; ok {
		return tier
	}
	return TierUnknown
}

// RoadSegment is the nearest road way to a query point. Fetched fresh per
// query, never retained.
type RoadSegment struct {
	Highway   string  // OSM highway tag, first value if multi-valued
	Service   string  // OSM service sub-tag, if any
	DistanceM float64 // distance from the query point in meters
}

// Tier returns the visibility tier of the segment's highway tag.
func (s RoadSegment) Tier() VisibilityTier {
	return TierForHighway(s.Highway)
}
