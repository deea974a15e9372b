package section

import "github.com/sells-group/city-guide/internal/model"

// Section is one scrollable block of the rendered guide.
type Section struct {
	ID          string                              `json:"id"`
	Title       string                              `json:"title"`
	Icon        string                              `json:"icon"`
	Content     string                              `json:"content"`
	Overview    string                              `json:"overview,omitempty"`
	Items       []model.StatItem                    `json:"items,omitempty"`
	Subsections *model.OrderedMap[model.Subsection] `json:"subsections,omitempty"`
}

// Build derives the page sections from a city: a synthetic overview first,
// then one section per category in the payload's order.
func Build(city *model.CityData) []Section {
	sections := make([]Section, 0, city.Categories.Len()+1)
	sections = append(sections, Section{
		ID:      model.OverviewKey,
		Title:   Label(model.OverviewKey),
		Icon:    Icon(model.OverviewKey),
		Content: city.Overview,
	})
	for key, cat := range city.Categories.All() {
		sections = append(sections, Section{
			ID:          key,
			Title:       cat.Title,
			Icon:        Icon(key),
			Content:     cat.Description,
			Overview:    cat.Overview,
			Items:       cat.Items,
			Subsections: cat.Subsections,
		})
	}
	return sections
}

// SectionIDs returns the ids of sections in order.
func SectionIDs(sections []Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}
