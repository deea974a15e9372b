package neighborhood

import (
	"cmp"
	"slices"

	"github.com/sells-group/city-guide/internal/model"
)

// SortKey selects the ranking order.
type SortKey string

const (
	SortBestMatch  SortKey = "best-match"
	SortRent       SortKey = "rent"
	SortCommute    SortKey = "commute"
	SortScore      SortKey = "score"
	SortCloserLook SortKey = "closer-look"
)

// ParseSortKey maps a user-supplied key to a SortKey. Unknown and empty keys
// rank by best match.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortRent, SortCommute, SortScore, SortCloserLook, SortBestMatch:
		return k
	default:
		return SortBestMatch
	}
}

// Filter is the finder's transient budget and ordering state.
type Filter struct {
	Sort       SortKey `json:"sort"`
	MaxCommute int     `json:"max_commute"`
	MaxRent    int     `json:"max_rent"`
}

// DefaultFilter is the state the finder opens with.
func DefaultFilter() Filter {
	return Filter{Sort: SortBestMatch, MaxCommute: 60, MaxRent: 3000}
}

// Rank keeps the neighborhoods within both budgets (inclusive) and orders
// them by f.Sort. Rent and commute sort ascending; every other key sorts by
// descending score. Ties keep catalog order.
func (c *Catalog) Rank(f Filter) []model.Neighborhood {
	kept := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.commute <= f.MaxCommute && e.rent <= f.MaxRent {
			kept = append(kept, e)
		}
	}

	var less func(a, b entry) int
	switch f.Sort {
	case SortRent:
		less = func(a, b entry) int { return cmp.Compare(a.rent, b.rent) }
	case SortCommute:
		less = func(a, b entry) int { return cmp.Compare(a.commute, b.commute) }
	default:
		less = func(a, b entry) int { return cmp.Compare(b.Score, a.Score) }
	}
	slices.SortStableFunc(kept, less)

	out := make([]model.Neighborhood, len(kept))
	for i, e := range kept {
		out[i] = e.Neighborhood
	}
	return out
}
