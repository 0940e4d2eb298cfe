package main

import (
	"github.com/portscout/portscout/internal/batch"
	"github.com/portscout/portscout/internal/fetcher"
	"github.com/portscout/portscout/internal/osm"
	"github.com/portscout/portscout/internal/resolve"
	"github.com/portscout/portscout/internal/score"
	"github.com/portscout/portscout/pkg/geocode"
)

// scoutEnv bundles the resolver and scoring engine shared by the score,
// batch, and serve commands.
type scoutEnv struct {
	Resolver *resolve.Resolver
	Engine   *score.Engine
}

// initEnv validates configuration for the given run mode and wires the
// clients. One engine instance is shared so the coordinate cache spans a
// whole batch or server lifetime.
func initEnv(mode string) (*scoutEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	geo := osm.NewClient(cfg.Overpass.Endpoint, cfg.Overpass.Timeout(),
		osm.WithRateLimit(cfg.Overpass.RatePerSecond),
	)
	engine := score.NewEngine(geo)

	urls := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Nominatim.UserAgent,
		Timeout:      cfg.Resolve.URLTimeout(),
		RateLimiters: fetcher.DefaultRateLimiters(),
	})

	nominatim := geocode.NewNominatimProvider(
		geocode.WithBaseURL(cfg.Nominatim.BaseURL),
		geocode.WithUserAgent(cfg.Nominatim.UserAgent),
		geocode.WithNominatimRate(cfg.Nominatim.RatePerSecond),
	)
	geocoder := geocode.NewCascadeClient([]geocode.Provider{nominatim})

	resolver := resolve.NewResolver(urls, geocoder)

	return &scoutEnv{Resolver: resolver, Engine: engine}, nil
}

// newRunner builds a batch runner over the shared environment.
func (e *scoutEnv) newRunner(concurrency int) *batch.Runner {
	return batch.NewRunner(e.Resolver, e.Engine, batch.WithConcurrency(concurrency))
}
