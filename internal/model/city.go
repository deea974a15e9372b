package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// TopicKeys are the category keys every city guide carries, in display order.
var TopicKeys = []string{
	"education",
	"transportation",
	"travel",
	"banking",
	"internet",
	"mobile",
	"healthcare",
}

// OverviewKey is the synthetic section built from the city's own overview.
const OverviewKey = "overview"

// SectionKeys returns the overview key followed by TopicKeys.
func SectionKeys() []string {
	return append([]string{OverviewKey}, TopicKeys...)
}

// StatValue holds a fact's value, which upstream sends either as a string
// ("2,500+") or as a bare number.
type StatValue struct {
	text   string
	number float64
	isNum  bool
}

// Text returns a string StatValue.
func Text(s string) StatValue { return StatValue{text: s} }

// Number returns a numeric StatValue.
func Number(n float64) StatValue { return StatValue{number: n, isNum: true} }

// IsNumber reports whether the value was numeric.
func (v StatValue) IsNumber() bool { return v.isNum }

// Float returns the numeric value; zero for text values.
func (v StatValue) Float() float64 { return v.number }

func (v StatValue) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

func (v StatValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

func (v *StatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = StatValue{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "model: decode stat text")
		}
		*v = Text(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return eris.Wrapf(err, "model: stat value %s is neither string nor number", string(data))
	}
	*v = Number(n)
	return nil
}

func (v *StatValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return eris.Errorf("model: stat value at line %d must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return eris.Wrapf(err, "model: parse stat number %q", node.Value)
		}
		*v = Number(n)
	default:
		*v = Text(node.Value)
	}
	return nil
}

// Weather is the current-conditions block shown in the hero.
type Weather struct {
	Temperature string `json:"temperature" yaml:"temperature"`
	Condition   string `json:"condition" yaml:"condition"`
	Icon        string `json:"icon" yaml:"icon"`
	Country     string `json:"country" yaml:"country"`
}

// StatItem is a labeled fact.
type StatItem struct {
	Name        string    `json:"name" yaml:"name"`
	Value       StatValue `json:"value" yaml:"value"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Details     string    `json:"details,omitempty" yaml:"details"`
	Link        string    `json:"link,omitempty" yaml:"link"`
}

// Subsection is one nested block inside a category.
type Subsection struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Items       []StatItem `json:"items,omitempty" yaml:"items"`
}

// CategoryData backs one topic section of the guide.
type CategoryData struct {
	Title       string                  `json:"title" yaml:"title"`
	Description string                  `json:"description" yaml:"description"`
	Overview    string                  `json:"overview,omitempty" yaml:"overview"`
	Items       []StatItem              `json:"items,omitempty" yaml:"items"`
	Subsections *OrderedMap[Subsection] `json:"subsections,omitempty" yaml:"subsections"`
}

// CityData is the full guide payload for one city.
type CityData struct {
	ID         string                   `json:"id" yaml:"id"`
	Name       string                   `json:"name" yaml:"name"`
	Country    string                   `json:"country" yaml:"country"`
	ImageURL   string                   `json:"imageUrl" yaml:"imageUrl"`
	Weather    *Weather                 `json:"weather,omitempty" yaml:"weather"`
	Overview   string                   `json:"overview" yaml:"overview"`
	Snippet    string                   `json:"snippet,omitempty" yaml:"snippet"`
	Population string                   `json:"population,omitempty" yaml:"population"`
	Area       string                   `json:"area,omitempty" yaml:"area"`
	Timezone   string                   `json:"timezone,omitempty" yaml:"timezone"`
	Currency   string                   `json:"currency,omitempty" yaml:"currency"`
	Language   string                   `json:"language,omitempty" yaml:"language"`
	Categories OrderedMap[CategoryData] `json:"categories" yaml:"categories"`
}

// MissingTopics returns the TopicKeys absent from Categories.
func (c *CityData) MissingTopics() []string {
	var missing []string
	for _, k := range TopicKeys {
		if !c.Categories.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Validate checks the fields the guide cannot render without.
func (c *CityData) Validate() error {
	if c.Name == "" {
		return eris.New("model: city name is empty")
	}
	if missing := c.MissingTopics(); len(missing) > 0 {
		return eris.Errorf("model: city %q missing categories %v", c.Name, missing)
	}
	return nil
}
