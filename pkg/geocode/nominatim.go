package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultNominatimURL is the public OSM Nominatim search endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// NominatimProvider geocodes via the OSM Nominatim API.
type NominatimProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// NominatimOption configures a NominatimProvider.
type NominatimOption func(*NominatimProvider)

// WithBaseURL overrides the Nominatim endpoint; used against test servers
// and self-hosted instances.
func WithBaseURL(u string) NominatimOption {
	return func(p *NominatimProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header. The Nominatim usage policy
// requires one that identifies the application.
func WithUserAgent(ua string) NominatimOption {
	return func(p *NominatimProvider) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(p *NominatimProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// WithNominatimRate sets the outbound request rate. The public instance
// allows at most one request per second.
func WithNominatimRate(n float64) NominatimOption {
	return func(p *NominatimProvider) {
		if n > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// NewNominatimProvider creates a provider against the public Nominatim
// instance, rate limited to 1 req/s per its usage policy.
func NewNominatimProvider(opts ...NominatimOption) *NominatimProvider {
	p := &NominatimProvider{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   DefaultNominatimURL,
		userAgent: "portscout/1.0 (https://github.com/portscout/portscout)",
		limiter:   rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *NominatimProvider) Name() string { return "nominatim" }

// Available implements Provider.
func (p *NominatimProvider) Available() bool { return true }

// nominatimResult is one entry of the Nominatim JSON response. Coordinates
// arrive as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode implements Provider, taking the first (best) Nominatim match.
func (p *NominatimProvider) Geocode(ctx context.Context, query string) (*Result, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "geocode: nominatim rate limit")
		}
	}

	reqURL, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: parse base url")
	}
	params := reqURL.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}
	if len(results) == 0 {
		return &Result{Matched: false, Source: p.Name()}, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: invalid latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: invalid longitude %q", results[0].Lon)
	}

	zap.L().Debug("nominatim match",
		zap.String("query", query),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)
	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
		Source:      p.Name(),
		Matched:     true,
	}, nil
}
