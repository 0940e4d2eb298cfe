package osm

import (
	"math"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/portscout/portscout/internal/model"
)

const earthRadiusM = 6371000

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// projector maps lat/lon to a local planar frame in meters centered on an
// origin point. Accurate enough for the sub-kilometer radii used here.
type projector struct {
	lat0, lon0 float64
	kx, ky     float64 // meters per degree of longitude / latitude
}

func newProjector(origin model.Coordinate) projector {
	latMid := origin.Lat * math.Pi / 180
	return projector{
		lat0: origin.Lat,
		lon0: origin.Lon,
		kx:   111412.84 * math.Cos(latMid),
		ky:   111132.92 - 559.82*math.Cos(2*latMid),
	}
}

func (p projector) coord(lat, lon float64) geom.Coord {
	return geom.Coord{(lon - p.lon0) * p.kx, (lat - p.lat0) * p.ky}
}

// NearestWay returns the way whose geometry passes closest to the point,
// along with the perpendicular distance in meters. ok is false when no way
// has usable geometry.
func NearestWay(pt model.Coordinate, ways []Way) (nearest Way, distM float64, ok bool) {
	origin := newProjector(pt)
	p := origin.coord(pt.Lat, pt.Lon)

	best := math.Inf(1)
	for _, way := range ways {
		d, segOK := wayDistance(origin, p, way)
		if segOK && d < best {
			best = d
			nearest = way
			ok = true
		}
	}
	return nearest, best, ok
}

// wayDistance returns the minimum distance from p to any segment of the way.
func wayDistance(origin projector, p geom.Coord, way Way) (float64, bool) {
	if len(way.Nodes) == 0 {
		return 0, false
	}
	if len(way.Nodes) == 1 {
		n := way.Nodes[0]
		return HaversineM(origin.lat0, origin.lon0, n.Lat, n.Lon), true
	}

	best := math.Inf(1)
	for i := 0; i < len(way.Nodes)-1; i++ {
		a := origin.coord(way.Nodes[i].Lat, way.Nodes[i].Lon)
		b := origin.coord(way.Nodes[i+1].Lat, way.Nodes[i+1].Lon)
		if d := xy.DistanceFromPointToLine(p, a, b); d < best {
			best = d
		}
	}
	return best, true
}

// NearestFeature returns the feature closest to the point and its distance
// in meters.
func NearestFeature(pt model.Coordinate, features []Feature) (Feature, float64, bool) {
	best := math.Inf(1)
	var nearest Feature
	found := false
	for _, f := range features {
		d := HaversineM(pt.Lat, pt.Lon, f.Lat, f.Lon)
		if d < best {
			best = d
			nearest = f
			found = true
		}
	}
	return nearest, best, found
}
