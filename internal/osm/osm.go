// Package osm queries the OpenStreetMap Overpass API for features and road
// geometry around a point, and provides the graph and distance helpers the
// scoring checks are built on.
package osm

// Feature is a point feature matched by a tag query.
type Feature struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// Node is one point of a way's geometry.
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Way is a road way with its ordered node geometry.
type Way struct {
	ID    int64
	Tags  map[string]string
	Nodes []Node
}

// Highway returns the way's highway tag, or "" if untagged.
func (w Way) Highway() string {
	return w.Tags["highway"]
}

// RoadCategory selects which highway types a road query matches.
type RoadCategory int

const (
	// CategoryAll matches every tagged highway, including footways and paths.
	CategoryAll RoadCategory = iota
	// CategoryVehicle matches only roads open to motor vehicles.
	CategoryVehicle
)

// vehicleHighways are the highway tag values queried for CategoryVehicle.
// Mirrors the tier table in internal/model: everything from motorways down
// to service roads, nothing pedestrian-only.
var vehicleHighways = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "living_street", "service",
}
