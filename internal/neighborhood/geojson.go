package neighborhood

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/city-guide/internal/model"
)

func point(c model.Coordinates) *geom.Point {
	// GeoJSON positions are lng, lat.
	return geom.NewPointFlat(geom.XY, []float64{c.Lng(), c.Lat()}).SetSRID(4326)
}

// MapFeatures renders ranked neighborhoods, and the office when known, as
// map markers. Features follow the ranking order and carry their rank.
func MapFeatures(office *model.OfficeLocation, ranked []model.Neighborhood) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(ranked)+1)}

	if office != nil {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "office",
			Geometry: point(office.Coordinates),
			Properties: map[string]any{
				"kind":         "office",
				"address":      office.Address,
				"neighborhood": office.Neighborhood,
			},
		})
	}

	for i, n := range ranked {
		style := Style(n.Grade)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       n.ID,
			Geometry: point(n.Coordinates),
			Properties: map[string]any{
				"kind":    "neighborhood",
				"rank":    i + 1,
				"name":    n.Name,
				"grade":   string(n.Grade),
				"score":   n.Score,
				"rent":    n.Rent,
				"commute": n.Commute,
				"color":   style.Color,
				"size":    style.Size,
			},
		})
	}
	return fc
}
