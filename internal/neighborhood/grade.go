package neighborhood

import "github.com/sells-group/city-guide/internal/model"

// MarkerStyle is how a neighborhood is drawn on the map. Warmer grades get
// cooler colors and larger markers.
type MarkerStyle struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// GradeWeight orders grades: A+ > A > B+ > B > everything else.
func GradeWeight(g model.Grade) int {
	switch g {
	case model.GradeAPlus:
		return 4
	case model.GradeA:
		return 3
	case model.GradeBPlus:
		return 2
	case model.GradeB:
		return 1
	default:
		return 0
	}
}

var palette = [...]string{
	0: "#ef4444", // red
	1: "#f97316", // orange
	2: "#eab308", // yellow
	3: "#22c55e", // green
	4: "#10b981", // emerald
}

// Style returns the marker style for a grade.
func Style(g model.Grade) MarkerStyle {
	w := GradeWeight(g)
	return MarkerStyle{Color: palette[w], Size: 24 + 4*w}
}
