package neighborhood

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/city-guide/internal/model"
)

// ErrEmptyAddress is returned when a search is submitted without an address.
var ErrEmptyAddress = eris.New("neighborhood: office address is empty")

// CityOfLondon is where every office currently resolves to.
var CityOfLondon = model.OfficeLocation{
	Coordinates:  model.Coordinates{51.5074, -0.1278},
	Neighborhood: "City of London",
}

// Geocoder resolves a free-text office address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*model.OfficeLocation, error)
}

// StaticGeocoder resolves every non-blank address to one fixed location.
type StaticGeocoder struct {
	Location model.OfficeLocation
}

// Geocode implements Geocoder.
func (g StaticGeocoder) Geocode(_ context.Context, address string) (*model.OfficeLocation, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	loc := g.Location
	loc.Address = address
	return &loc, nil
}

// SearchResult is the office a search resolved to and the catalog to rank
// against it.
type SearchResult struct {
	Office        model.OfficeLocation `json:"office"`
	Neighborhoods []model.Neighborhood `json:"neighborhoods"`
}

// Finder runs office searches against a catalog.
type Finder struct {
	catalog  *Catalog
	geocoder Geocoder
	latency  time.Duration
}

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// WithGeocoder overrides the StaticGeocoder default.
func WithGeocoder(g Geocoder) FinderOption {
	return func(f *Finder) {
		f.geocoder = g
	}
}

// WithSearchLatency sets the delay applied before a search resolves.
func WithSearchLatency(d time.Duration) FinderOption {
	return func(f *Finder) {
		f.latency = d
	}
}

// NewFinder creates a Finder over catalog.
func NewFinder(catalog *Catalog, opts ...FinderOption) *Finder {
	f := &Finder{
		catalog:  catalog,
		geocoder: StaticGeocoder{Location: CityOfLondon},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Catalog returns the catalog searches rank against.
func (f *Finder) Catalog() *Catalog { return f.catalog }

// Search resolves address and returns the full catalog for ranking.
func (f *Finder) Search(ctx context.Context, address string) (*SearchResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	if f.latency > 0 {
		timer := time.NewTimer(f.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, eris.Wrap(ctx.Err(), "neighborhood: search canceled")
		case <-timer.C:
		}
	}

	office, err := f.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, eris.Wrap(err, "neighborhood: geocode office")
	}

	zap.L().Debug("neighborhood search resolved",
		zap.String("address", office.Address),
		zap.String("neighborhood", office.Neighborhood),
	)

	return &SearchResult{Office: *office, Neighborhoods: f.catalog.All()}, nil
}
