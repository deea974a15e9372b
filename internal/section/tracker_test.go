package section

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// backwardScan is the straightforward definition Active must agree with.
func backwardScan(order []string, anchors []Anchor, scrollY int) (string, bool) {
	byID := make(map[string]int)
	for _, a := range anchors {
		if _, ok := byID[a.ID]; !ok {
			byID[a.ID] = a.Offset
		}
	}
	probe := scrollY + LookaheadOffset
	for i := len(order) - 1; i >= 0; i-- {
		if off, ok := byID[order[i]]; ok && off <= probe {
			return order[i], true
		}
	}
	return "", false
}

func TestLayout_Active(t *testing.T) {
	order := []string{"overview", "education", "transportation"}
	layout := NewLayout(order, []Anchor{
		{ID: "overview", Offset: 0},
		{ID: "education", Offset: 600},
		{ID: "transportation", Offset: 1400},
	})

	tests := []struct {
		name    string
		scrollY int
		want    string
	}{
		{name: "top", scrollY: 0, want: "overview"},
		{name: "probe_650", scrollY: 500, want: "education"},
		{name: "exact_boundary", scrollY: 450, want: "education"},
		{name: "just_before_boundary", scrollY: 449, want: "overview"},
		{name: "last_section", scrollY: 1250, want: "transportation"},
		{name: "far_below", scrollY: 100000, want: "transportation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.Active(tt.scrollY))
		})
	}
}

func TestLayout_ActiveDefaultsToFirstSection(t *testing.T) {
	layout := NewLayout([]string{"overview", "education"}, []Anchor{
		{ID: "overview", Offset: 900},
		{ID: "education", Offset: 1500},
	})
	assert.Equal(t, "overview", layout.Active(0))

	assert.Equal(t, "", NewLayout(nil, nil).Active(0))
}

func TestLayout_ActiveIsIdempotent(t *testing.T) {
	layout := NewLayout(IDs(), []Anchor{{ID: "overview", Offset: 0}, {ID: "banking", Offset: 2000}})
	first := layout.Active(1900)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, layout.Active(1900))
	}
}

func TestLayout_ActiveMonotonicWhileScrollingDown(t *testing.T) {
	order := IDs()
	anchors := make([]Anchor, len(order))
	for i, id := range order {
		anchors[i] = Anchor{ID: id, Offset: i * 700}
	}
	layout := NewLayout(order, anchors)

	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	prev := 0
	for y := 0; y <= len(order)*700; y += 37 {
		cur := index[layout.Active(y)]
		assert.GreaterOrEqual(t, cur, prev, "scrollY=%d", y)
		prev = cur
	}
}

func TestLayout_MatchesBackwardScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	order := IDs()

	for round := 0; round < 200; round++ {
		var anchors []Anchor
		for _, id := range order {
			if rng.IntN(5) == 0 {
				continue // section not rendered
			}
			anchors = append(anchors, Anchor{ID: id, Offset: rng.IntN(5000)})
		}
		layout := NewLayout(order, anchors)

		for probe := 0; probe < 20; probe++ {
			y := rng.IntN(5500) - 200
			want, ok := backwardScan(order, anchors, y)
			if !ok {
				want = order[0]
			}
			assert.Equal(t, want, layout.Active(y), "round=%d scrollY=%d anchors=%v", round, y, anchors)
		}
	}
}

func TestLayout_IgnoresUnknownAndDuplicateAnchors(t *testing.T) {
	layout := NewLayout([]string{"overview", "education"}, []Anchor{
		{ID: "overview", Offset: 0},
		{ID: "stray", Offset: 50},
		{ID: "education", Offset: 300},
		{ID: "education", Offset: 10},
	})
	assert.Equal(t, "overview", layout.Active(100))
	assert.Equal(t, "education", layout.Active(150))

	off, ok := layout.ScrollTarget("education")
	assert.True(t, ok)
	assert.Equal(t, 200, off)
}

func TestLayout_ScrollTarget(t *testing.T) {
	layout := NewLayout(IDs(), []Anchor{{ID: "travel", Offset: 2400}})

	off, ok := layout.ScrollTarget("travel")
	assert.True(t, ok)
	assert.Equal(t, 2300, off)

	_, ok = layout.ScrollTarget("healthcare")
	assert.False(t, ok)
}

func TestShowSidebar(t *testing.T) {
	assert.False(t, ShowSidebar(0))
	assert.False(t, ShowSidebar(400))
	assert.True(t, ShowSidebar(401))
}

func TestLayout_Evaluate(t *testing.T) {
	layout := NewLayout(IDs(), []Anchor{{ID: "overview", Offset: 0}, {ID: "education", Offset: 600}})

	v := layout.Evaluate(500)
	assert.Equal(t, View{Active: "education", ShowSidebar: true}, v)

	v = layout.Evaluate(100)
	assert.Equal(t, View{Active: "overview", ShowSidebar: false}, v)
}
