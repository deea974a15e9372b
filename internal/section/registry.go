// Package section holds the ordered city-guide sections, the sections
// derived from a CityData payload, and the scroll tracker that decides which
// section is currently in view.
package section

import "github.com/sells-group/city-guide/internal/model"

// DefaultIcon is used for category keys with no registered icon.
const DefaultIcon = "info"

// Entry is one navigation item shared by the tab bar and the floating sidebar.
type Entry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var registry = []Entry{
	{ID: model.OverviewKey, Label: "Overview", Icon: "info"},
	{ID: "education", Label: "Education", Icon: "graduation-cap"},
	{ID: "transportation", Label: "Transportation", Icon: "bus"},
	{ID: "travel", Label: "Travel & Airports", Icon: "plane"},
	{ID: "banking", Label: "Banking & Finance", Icon: "credit-card"},
	{ID: "internet", Label: "Internet & TV", Icon: "wifi"},
	{ID: "mobile", Label: "Mobile Phones", Icon: "smartphone"},
	{ID: "healthcare", Label: "Healthcare", Icon: "heart"},
}

// Entries returns the navigation entries in display order.
func Entries() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the registered section ids in display order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.ID
	}
	return ids
}

func lookup(id string) (Entry, bool) {
	for _, e := range registry {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Icon returns the icon for a section key, or DefaultIcon.
func Icon(id string) string {
	if e, ok := lookup(id); ok {
		return e.Icon
	}
	return DefaultIcon
}

// Label returns the navigation label for a section key. Unknown keys are
// labeled with the key itself.
func Label(id string) string {
	if e, ok := lookup(id); ok {
		return e.Label
	}
	return id
}
