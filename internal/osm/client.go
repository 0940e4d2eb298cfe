package osm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	overpass "github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/portscout/portscout/internal/model"
)

// DefaultEndpoint is the public Overpass API interpreter.
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// runner executes a raw Overpass QL query. Satisfied by *overpass.Client;
// tests substitute a stub.
type runner interface {
	Query(query string) (overpass.Result, error)
}

// Client queries the Overpass API around a point.
type Client struct {
	run     runner
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outbound Overpass queries at n per second. The public
// interpreter throttles aggressive clients, so batch runs should set this.
func WithRateLimit(n float64) Option {
	return func(c *Client) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithRunner replaces the Overpass executor. Test hook.
func WithRunner(r runner) Option {
	return func(c *Client) {
		c.run = r
	}
}

// NewClient creates an Overpass-backed Client. The timeout bounds each
// individual query via the underlying HTTP client.
func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	op := overpass.NewWithSettings(endpoint, 2, httpClient)

	c := &Client{run: &op, timeout: timeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TransitNear returns rail stations, subway entrances, and public-transport
// stations within radiusM meters of the point.
func (c *Client) TransitNear(ctx context.Context, pt model.Coordinate, radiusM int) ([]Feature, error) {
	around := fmt.Sprintf("around:%d,%.7f,%.7f", radiusM, pt.Lat, pt.Lon)
	query := fmt.Sprintf(`[out:json][timeout:%d];
(
  node["railway"~"^(station|subway_entrance)$"](%s);
  way["railway"="station"](%s);
  node["public_transport"="station"](%s);
  way["public_transport"="station"](%s);
);
out body;`, c.timeoutSecs(), around, around, around, around)

	result, err := c.query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "osm: transit query")
	}

	features := make([]Feature, 0, len(result.Nodes)+len(result.Ways))
	for _, node := range result.Nodes {
		features = append(features, Feature{ID: node.ID, Lat: node.Lat, Lon: node.Lon, Tags: node.Tags})
	}
	for _, way := range result.Ways {
		f := Feature{ID: way.ID, Tags: way.Tags}
		f.Lat, f.Lon = wayCenter(way)
		features = append(features, f)
	}
	return features, nil
}

// RoadsNear returns road ways of the given category within radiusM meters
// of the point, with full node geometry.
func (c *Client) RoadsNear(ctx context.Context, pt model.Coordinate, radiusM int, cat RoadCategory) ([]Way, error) {
	around := fmt.Sprintf("around:%d,%.7f,%.7f", radiusM, pt.Lat, pt.Lon)

	var filter string
	switch cat {
	case CategoryVehicle:
		filter = fmt.Sprintf(`way["highway"~"^(%s)$"](%s);`, strings.Join(vehicleHighways, "|"), around)
	default:
		filter = fmt.Sprintf(`way["highway"](%s);`, around)
	}

	query := fmt.Sprintf(`[out:json][timeout:%d];
(
  %s
);
out body;
>;
out skel qt;`, c.timeoutSecs(), filter)

	result, err := c.query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "osm: road query")
	}

	ways := make([]Way, 0, len(result.Ways))
	for _, way := range result.Ways {
		if way.Tags["highway"] == "" {
			continue
		}
		w := Way{ID: way.ID, Tags: way.Tags, Nodes: make([]Node, 0, len(way.Nodes))}
		for _, n := range way.Nodes {
			if n == nil {
				continue
			}
			w.Nodes = append(w.Nodes, Node{ID: n.ID, Lat: n.Lat, Lon: n.Lon})
		}
		ways = append(ways, w)
	}
	return ways, nil
}

// query runs one Overpass query, honoring the context and rate limiter.
func (c *Client) query(ctx context.Context, query string) (overpass.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return overpass.Result{}, eris.Wrap(err, "osm: rate limiter wait")
		}
	}
	if err := ctx.Err(); err != nil {
		return overpass.Result{}, eris.Wrap(err, "osm: context done")
	}

	start := time.Now()
	result, err := c.run.Query(query)
	if err != nil {
		return overpass.Result{}, err
	}
	zap.L().Debug("overpass query complete",
		zap.Int("nodes", len(result.Nodes)),
		zap.Int("ways", len(result.Ways)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (c *Client) timeoutSecs() int {
	secs := int(c.timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}

// wayCenter returns the mean position of a way's nodes.
func wayCenter(way *overpass.Way) (float64, float64) {
	if len(way.Nodes) == 0 {
		return 0, 0
	}
	var lat, lon float64
	n := 0
	for _, node := range way.Nodes {
		if node == nil {
			continue
		}
		lat += node.Lat
		lon += node.Lon
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return lat / float64(n), lon / float64(n)
}
