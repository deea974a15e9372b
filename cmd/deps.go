package main

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/sells-group/city-guide/internal/cityguide"
	"github.com/sells-group/city-guide/internal/config"
	"github.com/sells-group/city-guide/internal/neighborhood"
	"github.com/sells-group/city-guide/internal/resilience"
	"github.com/sells-group/city-guide/internal/store"
	"github.com/sells-group/city-guide/pkg/guideapi"
)

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func newGuideClient(g config.GuideConfig) guideapi.Client {
	return guideapi.NewClient(
		guideapi.WithBaseURL(g.BaseURL),
		guideapi.WithHTTPClient(&http.Client{Timeout: g.Timeout()}),
		guideapi.WithRateLimit(g.RatePerSec, 1),
	)
}

// initProvider builds the guide provider. cache may be nil.
func initProvider(g config.GuideConfig, cache cityguide.Cache) (*cityguide.Provider, error) {
	opts := []cityguide.Option{
		cityguide.WithLive(g.Live),
		cityguide.WithLatency(g.Latency()),
		cityguide.WithBreaker(resilience.NewBreaker("guideapi", g.CircuitFailureThreshold, g.CircuitReset())),
	}
	if cache != nil && g.CacheTTLHours > 0 {
		opts = append(opts, cityguide.WithCache(cache, g.CacheTTL()))
	}
	p, err := cityguide.NewProvider(newGuideClient(g), opts...)
	if err != nil {
		return nil, eris.Wrap(err, "init guide provider")
	}
	return p, nil
}

func initFinder(n config.NeighborhoodConfig) (*neighborhood.Finder, error) {
	cat, err := neighborhood.LoadCatalogFile(n.CatalogPath)
	if err != nil {
		return nil, eris.Wrap(err, "load neighborhood catalog")
	}
	return neighborhood.NewFinder(cat, neighborhood.WithSearchLatency(n.SearchLatency())), nil
}

func defaultFilter(n config.NeighborhoodConfig) neighborhood.Filter {
	f := neighborhood.DefaultFilter()
	f.MaxCommute = n.MaxCommute
	f.MaxRent = n.MaxRent
	return f
}
