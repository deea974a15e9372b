// Package neighborhood ranks the neighborhood catalog against a commute and
// rent budget and resolves the office location a search is anchored on.
package neighborhood

import (
	_ "embed"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/city-guide/internal/model"
)

//go:embed data/london.yaml
var londonCatalog []byte

type entry struct {
	model.Neighborhood
	rent    int
	commute int
}

// Catalog is a fixed, read-only set of neighborhoods with their rent and
// commute already parsed.
type Catalog struct {
	entries []entry
	byID    map[string]int
}

// NewCatalog validates the neighborhoods and builds a catalog. Every rent and
// commute must parse and ids must be unique.
func NewCatalog(items []model.Neighborhood) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entry, 0, len(items)),
		byID:    make(map[string]int, len(items)),
	}
	for _, n := range items {
		if n.ID == "" {
			return nil, eris.Errorf("neighborhood: %q has no id", n.Name)
		}
		if _, dup := c.byID[n.ID]; dup {
			return nil, eris.Errorf("neighborhood: duplicate id %q", n.ID)
		}
		rent, err := ParseCurrency(n.Rent)
		if err != nil {
			return nil, err
		}
		commute, err := ParseMinutes(n.Commute)
		if err != nil {
			return nil, err
		}
		c.byID[n.ID] = len(c.entries)
		c.entries = append(c.entries, entry{Neighborhood: n, rent: rent, commute: commute})
	}
	return c, nil
}

// LoadCatalog decodes a YAML list of neighborhoods.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var items []model.Neighborhood
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		return nil, eris.Wrap(err, "neighborhood: decode catalog")
	}
	return NewCatalog(items)
}

// LoadCatalogFile reads a catalog from path, or the bundled London catalog
// when path is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "neighborhood: open catalog %s", path)
	}
	defer f.Close() //nolint:errcheck
	return LoadCatalog(f)
}

// DefaultCatalog returns the bundled London catalog.
func DefaultCatalog() (*Catalog, error) {
	var items []model.Neighborhood
	if err := yaml.Unmarshal(londonCatalog, &items); err != nil {
		return nil, eris.Wrap(err, "neighborhood: decode bundled catalog")
	}
	return NewCatalog(items)
}

// Len returns the number of neighborhoods.
func (c *Catalog) Len() int { return len(c.entries) }

// All returns the neighborhoods in catalog order.
func (c *Catalog) All() []model.Neighborhood {
	out := make([]model.Neighborhood, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Neighborhood
	}
	return out
}

// Get looks up a neighborhood by id.
func (c *Catalog) Get(id string) (model.Neighborhood, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Neighborhood{}, false
	}
	return c.entries[i].Neighborhood, true
}
