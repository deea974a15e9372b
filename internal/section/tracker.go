package section

import "sort"

const (
	// LookaheadOffset is added to the scroll position before comparing it
	// with section anchors.
	LookaheadOffset = 150
	// HeaderOffset is subtracted from an anchor when scrolling to it so the
	// section clears the sticky header.
	HeaderOffset = 100
	// SidebarThreshold is the scroll position past which the floating
	// navigation is shown.
	SidebarThreshold = 400
)

// Anchor is the rendered document offset of one section.
type Anchor struct {
	ID     string `json:"id"`
	Offset int    `json:"offset"`
}

// Layout is one measured layout pass: the sections in order and the offsets
// of those that were rendered. It is immutable and safe to share.
type Layout struct {
	order   []string
	anchors []Anchor
	// suffixMin[i] is the smallest offset among anchors[i:]; it is
	// non-decreasing, which makes Active a binary search.
	suffixMin []int
	offsets   map[string]int
}

// NewLayout builds a layout for the given section order. Anchors whose id is
// not in order are ignored; for duplicate ids the first anchor wins.
func NewLayout(order []string, anchors []Anchor) *Layout {
	byID := make(map[string]int, len(anchors))
	for _, a := range anchors {
		if _, dup := byID[a.ID]; !dup {
			byID[a.ID] = a.Offset
		}
	}

	l := &Layout{
		order:   append([]string(nil), order...),
		offsets: make(map[string]int, len(order)),
	}
	for _, id := range order {
		off, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := l.offsets[id]; dup {
			continue
		}
		l.offsets[id] = off
		l.anchors = append(l.anchors, Anchor{ID: id, Offset: off})
	}

	l.suffixMin = make([]int, len(l.anchors))
	for i := len(l.anchors) - 1; i >= 0; i-- {
		l.suffixMin[i] = l.anchors[i].Offset
		if i+1 < len(l.anchors) && l.suffixMin[i+1] < l.suffixMin[i] {
			l.suffixMin[i] = l.suffixMin[i+1]
		}
	}
	return l
}

// Active returns the last section in order whose anchor is at or above
// scrollY+LookaheadOffset. Before the first anchor is reached the first
// section is active. An empty layout yields "".
func (l *Layout) Active(scrollY int) string {
	probe := scrollY + LookaheadOffset
	i := sort.Search(len(l.suffixMin), func(i int) bool { return l.suffixMin[i] > probe })
	if i > 0 {
		return l.anchors[i-1].ID
	}
	if len(l.order) == 0 {
		return ""
	}
	return l.order[0]
}

// ScrollTarget returns the scroll position that brings id under the sticky
// header. ok is false when the section has no anchor.
func (l *Layout) ScrollTarget(id string) (offset int, ok bool) {
	off, ok := l.offsets[id]
	if !ok {
		return 0, false
	}
	return off - HeaderOffset, true
}

// ShowSidebar reports whether the floating navigation is visible at scrollY.
func ShowSidebar(scrollY int) bool {
	return scrollY > SidebarThreshold
}

// View is what the navigation surfaces render for one scroll position.
type View struct {
	Active      string `json:"active"`
	ShowSidebar bool   `json:"show_sidebar"`
}

// Evaluate computes the navigation view for scrollY.
func (l *Layout) Evaluate(scrollY int) View {
	return View{Active: l.Active(scrollY), ShowSidebar: ShowSidebar(scrollY)}
}
