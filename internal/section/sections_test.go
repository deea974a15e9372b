package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/city-guide/internal/model"
)

func TestBuild_OverviewFirstThenCategoryOrder(t *testing.T) {
	city := &model.CityData{Name: "Testville", Overview: "A small town."}
	city.Categories.Set("healthcare", model.CategoryData{Title: "Healthcare", Description: "Clinics"})
	city.Categories.Set("education", model.CategoryData{Title: "Education", Overview: "Schools"})
	city.Categories.Set("nightlife", model.CategoryData{Title: "Nightlife"})

	sections := Build(city)
	require.Len(t, sections, 4)

	assert.Equal(t, []string{"overview", "healthcare", "education", "nightlife"}, SectionIDs(sections))
	assert.Equal(t, "Overview", sections[0].Title)
	assert.Equal(t, "A small town.", sections[0].Content)
	assert.Equal(t, "heart", sections[1].Icon)
	assert.Equal(t, "Clinics", sections[1].Content)
	assert.Equal(t, "Schools", sections[2].Overview)
	assert.Equal(t, DefaultIcon, sections[3].Icon)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, model.SectionKeys(), IDs())
	assert.Equal(t, "Travel & Airports", Label("travel"))
	assert.Equal(t, "unknown", Label("unknown"))
	assert.Equal(t, DefaultIcon, Icon("unknown"))

	entries := Entries()
	entries[0].Label = "mutated"
	assert.Equal(t, "Overview", Label("overview"))
}
