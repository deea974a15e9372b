package neighborhood

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/city-guide/internal/model"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "25min", want: 25},
		{in: " 5min", want: 5},
		{in: "35", want: 35},
		{in: "min", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinutes(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency("£2,800")
	require.NoError(t, err)
	assert.Equal(t, 2800, got)

	got, err = ParseCurrency("£12,345,678")
	require.NoError(t, err)
	assert.Equal(t, 12345678, got)

	_, err = ParseCurrency("£")
	require.Error(t, err)

	_, err = ParseCurrency("£2,800.50")
	require.Error(t, err)
}

func TestFormatRent(t *testing.T) {
	assert.Equal(t, "£2,100", FormatRent(2100))
	assert.Equal(t, "£950", FormatRent(950))
	assert.Equal(t, "25min", FormatMinutes(25))

	n, err := ParseCurrency(FormatRent(1800))
	require.NoError(t, err)
	assert.Equal(t, 1800, n)
}

func TestGradeStyle(t *testing.T) {
	grades := []model.Grade{model.GradeAPlus, model.GradeA, model.GradeBPlus, model.GradeB, model.GradeCPlus}
	for i := 0; i+1 < len(grades); i++ {
		assert.Greater(t, GradeWeight(grades[i]), GradeWeight(grades[i+1]))
		assert.Greater(t, Style(grades[i]).Size, Style(grades[i+1]).Size)
	}
	assert.Equal(t, GradeWeight(model.GradeC), GradeWeight(model.GradeCPlus))
	assert.Equal(t, Style(model.Grade("Z")), Style(model.GradeC))
	assert.Equal(t, "#10b981", Style(model.GradeAPlus).Color)
}

type countingGeocoder struct {
	calls int
}

func (g *countingGeocoder) Geocode(_ context.Context, address string) (*model.OfficeLocation, error) {
	g.calls++
	return &model.OfficeLocation{Address: address, Neighborhood: "Elsewhere"}, nil
}

func TestFinder_Search(t *testing.T) {
	f := NewFinder(loadDefault(t))

	res, err := f.Search(context.Background(), "  1 Poultry, London  ")
	require.NoError(t, err)
	assert.Equal(t, "1 Poultry, London", res.Office.Address)
	assert.Equal(t, "City of London", res.Office.Neighborhood)
	assert.Equal(t, model.Coordinates{51.5074, -0.1278}, res.Office.Coordinates)
	assert.Len(t, res.Neighborhoods, 6)
}

func TestFinder_SearchRejectsBlank(t *testing.T) {
	geo := &countingGeocoder{}
	f := NewFinder(loadDefault(t), WithGeocoder(geo))

	_, err := f.Search(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyAddress)
	assert.Equal(t, 0, geo.calls)

	res, err := f.Search(context.Background(), "anywhere")
	require.NoError(t, err)
	assert.Equal(t, "Elsewhere", res.Office.Neighborhood)
	assert.Equal(t, 1, geo.calls)
}

func TestFinder_SearchHonorsContext(t *testing.T) {
	f := NewFinder(loadDefault(t), WithSearchLatency(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Search(ctx, "1 Poultry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestStaticGeocoder(t *testing.T) {
	g := StaticGeocoder{Location: CityOfLondon}
	_, err := g.Geocode(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyAddress)

	loc, err := g.Geocode(context.Background(), "not a real place at all")
	require.NoError(t, err)
	assert.Equal(t, CityOfLondon.Coordinates, loc.Coordinates)
	assert.Empty(t, CityOfLondon.Address)
}

func TestMapFeatures(t *testing.T) {
	c := loadDefault(t)
	ranked := c.Rank(Filter{Sort: SortRent, MaxCommute: 30, MaxRent: 2500})
	office := CityOfLondon
	office.Address = "1 Poultry"

	fc := MapFeatures(&office, ranked)
	require.Len(t, fc.Features, 3)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	assert.Equal(t, "office", decoded.Features[0].ID)
	assert.Equal(t, "camden", decoded.Features[1].ID)
	assert.Equal(t, "shoreditch", decoded.Features[2].ID)

	camden := decoded.Features[1]
	assert.Equal(t, "Point", camden.Geometry.Type)
	assert.InDelta(t, -0.1419, camden.Geometry.Coordinates[0], 1e-9)
	assert.InDelta(t, 51.5424, camden.Geometry.Coordinates[1], 1e-9)
	assert.EqualValues(t, 1, camden.Properties["rank"])
	assert.Equal(t, "#22c55e", camden.Properties["color"])

	assert.Len(t, MapFeatures(nil, nil).Features, 0)
}
