// Package cityguide loads city guide data. The initial load never fails: any
// upstream problem is logged and masked with the bundled dataset. Follow-up
// questions go straight to the upstream and surface its errors.
package cityguide

import (
	"context"
	_ "embed"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/city-guide/internal/model"
	"github.com/sells-group/city-guide/internal/resilience"
	"github.com/sells-group/city-guide/pkg/guideapi"
)

//go:embed data/london.yaml
var londonGuide []byte

// Source says where a Result's data came from.
type Source string

const (
	// SourceLive is a fresh upstream response.
	SourceLive Source = "live"
	// SourceCache is an upstream response served from the store.
	SourceCache Source = "cache"
	// SourceStatic is the bundled dataset served because live loading is off.
	SourceStatic Source = "static"
	// SourceFallback is the bundled dataset served because live loading failed.
	SourceFallback Source = "fallback"
)

// ErrEmptyQuery is returned by AskCityQuestion for a blank query.
var ErrEmptyQuery = eris.New("cityguide: query is empty")

// Result is the outcome of an initial load. Data is never nil. Err holds the
// masked cause when Source is SourceFallback.
type Result struct {
	Data   *model.CityData
	Source Source
	Err    error
}

// Cache stores upstream responses between loads.
type Cache interface {
	// GetCachedCity returns nil, nil on a miss.
	GetCachedCity(ctx context.Context, key string) (*model.CityData, error)
	SetCachedCity(ctx context.Context, key string, city *model.CityData, ttl time.Duration) error
}

var loadFallback = sync.OnceValues(func() (*model.CityData, error) {
	var city model.CityData
	if err := yaml.Unmarshal(londonGuide, &city); err != nil {
		return nil, eris.Wrap(err, "cityguide: decode bundled guide")
	}
	if err := city.Validate(); err != nil {
		return nil, eris.Wrap(err, "cityguide: bundled guide")
	}
	return &city, nil
})

// Fallback returns the bundled London guide. Callers must not modify it.
func Fallback() (*model.CityData, error) {
	return loadFallback()
}

// Option configures a Provider.
type Option func(*Provider)

// WithLive enables upstream loading for FetchCityData.
func WithLive(live bool) Option {
	return func(p *Provider) {
		p.live = live
	}
}

// WithLatency sets the delay applied before FetchCityData resolves.
func WithLatency(d time.Duration) Option {
	return func(p *Provider) {
		p.latency = d
	}
}

// WithBreaker routes upstream calls through b.
func WithBreaker(b *resilience.Breaker) Option {
	return func(p *Provider) {
		p.breaker = b
	}
}

// WithCache caches live responses for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(p *Provider) {
		p.cache = c
		p.cacheTTL = ttl
	}
}

// Provider serves city guides.
type Provider struct {
	client   guideapi.Client
	live     bool
	latency  time.Duration
	breaker  *resilience.Breaker
	cache    Cache
	cacheTTL time.Duration
	fallback *model.CityData
	group    singleflight.Group
}

// NewProvider creates a Provider backed by client.
func NewProvider(client guideapi.Client, opts ...Option) (*Provider, error) {
	fb, err := Fallback()
	if err != nil {
		return nil, err
	}
	p := &Provider{
		client:   client,
		latency:  1500 * time.Millisecond,
		breaker:  resilience.NewBreaker("guideapi", 5, 30*time.Second),
		fallback: fb,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// FetchCityData loads the guide for city. It always returns data; see Result.
// Concurrent loads of the same city share one upstream call. The shared call
// outlives any single caller: a caller whose ctx ends gets the fallback
// alone while the others keep waiting.
func (p *Provider) FetchCityData(ctx context.Context, city string) Result {
	if err := ctx.Err(); err != nil {
		return p.canceledResult(city, err)
	}
	shared := context.WithoutCancel(ctx)
	ch := p.group.DoChan(cacheKey(city), func() (any, error) {
		return p.fetch(shared, city), nil
	})
	select {
	case <-ctx.Done():
		return p.canceledResult(city, ctx.Err())
	case res := <-ch:
		return res.Val.(Result)
	}
}

func (p *Provider) fetch(ctx context.Context, city string) Result {
	if p.latency > 0 {
		time.Sleep(p.latency)
	}

	if !p.live {
		return Result{Data: p.fallback, Source: SourceStatic}
	}

	key := cacheKey(city)
	if p.cache != nil {
		cached, err := p.cache.GetCachedCity(ctx, key)
		if err != nil {
			zap.L().Warn("city cache read failed", zap.String("city", key), zap.Error(err))
		} else if cached != nil {
			return Result{Data: cached, Source: SourceCache}
		}
	}

	data, err := p.generate(ctx, guideapi.GenerateRequest{
		City:           city,
		IncludeDetails: true,
		Sections:       model.SectionKeys(),
	})
	if err == nil {
		err = data.Validate()
	}
	if err != nil {
		return p.fallbackResult(city, err)
	}

	if p.cache != nil {
		if err := p.cache.SetCachedCity(ctx, key, data, p.cacheTTL); err != nil {
			zap.L().Warn("city cache write failed", zap.String("city", key), zap.Error(err))
		}
	}
	return Result{Data: data, Source: SourceLive}
}

func (p *Provider) fallbackResult(city string, cause error) Result {
	zap.L().Error("failed to fetch city data, serving fallback",
		zap.String("city", city),
		zap.String("error_type", resilience.Classify(cause)),
		zap.Error(cause),
	)
	return Result{Data: p.fallback, Source: SourceFallback, Err: cause}
}

// canceledResult is served to a caller that stopped waiting. Not an upstream
// failure, so it is logged at debug.
func (p *Provider) canceledResult(city string, cause error) Result {
	err := eris.Wrap(cause, "cityguide: load canceled")
	zap.L().Debug("city load canceled by caller, serving fallback",
		zap.String("city", city),
		zap.Error(err),
	)
	return Result{Data: p.fallback, Source: SourceFallback, Err: err}
}

func (p *Provider) generate(ctx context.Context, req guideapi.GenerateRequest) (*model.CityData, error) {
	return resilience.Call(ctx, p.breaker, func(ctx context.Context) (*model.CityData, error) {
		var data model.CityData
		if err := p.client.Generate(ctx, req, &data); err != nil {
			return nil, err
		}
		return &data, nil
	})
}

// AskCityQuestion sends a follow-up question about city upstream. Unlike
// FetchCityData, failures are returned to the caller.
func (p *Provider) AskCityQuestion(ctx context.Context, city, query string) (*model.CityData, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	data, err := p.generate(ctx, guideapi.GenerateRequest{City: city, Query: query})
	if err != nil {
		zap.L().Error("failed to ask city question",
			zap.String("city", city),
			zap.Error(err),
		)
		return nil, eris.Wrap(err, "cityguide: ask question")
	}
	return data, nil
}
