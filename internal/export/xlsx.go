// Package export writes ranked neighborhood lists as spreadsheets.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/city-guide/internal/model"
	"github.com/sells-group/city-guide/internal/neighborhood"
)

// Sheet names.
const (
	RankingSheet = "Ranking"
	PlacesSheet  = "Nearby Places"
)

var rankingHeader = []string{
	"Rank", "Name", "Grade", "Score", "Rent", "Rent (GBP)", "Commute", "Commute (min)",
	"Walk Score", "Transit Score", "Bike Score", "Crime Rate", "Lat", "Lng",
}

var placesHeader = []string{"Neighborhood", "Place", "Type", "Distance", "Rating"}

// Neighborhoods builds a workbook with one ranking row per neighborhood, in
// the given order, plus a sheet of nearby places.
func Neighborhoods(ranked []model.Neighborhood) (*xlsx.File, error) {
	f := xlsx.NewFile()

	ranking, err := f.AddSheet(RankingSheet)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add ranking sheet")
	}
	addHeader(ranking, rankingHeader)

	places, err := f.AddSheet(PlacesSheet)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add places sheet")
	}
	addHeader(places, placesHeader)

	for i, n := range ranked {
		rent, err := neighborhood.ParseCurrency(n.Rent)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: neighborhood %s", n.ID)
		}
		commute, err := neighborhood.ParseMinutes(n.Commute)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: neighborhood %s", n.ID)
		}

		row := ranking.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(n.Name)
		row.AddCell().SetString(string(n.Grade))
		row.AddCell().SetInt(n.Score)
		row.AddCell().SetString(n.Rent)
		row.AddCell().SetInt(rent)
		row.AddCell().SetString(n.Commute)
		row.AddCell().SetInt(commute)
		row.AddCell().SetInt(n.Stats.WalkScore)
		row.AddCell().SetInt(n.Stats.TransitScore)
		row.AddCell().SetInt(n.Stats.BikeScore)
		row.AddCell().SetString(n.Stats.CrimeRate)
		row.AddCell().SetFloat(n.Coordinates.Lat())
		row.AddCell().SetFloat(n.Coordinates.Lng())

		for _, p := range n.NearbyPlaces {
			prow := places.AddRow()
			prow.AddCell().SetString(n.Name)
			prow.AddCell().SetString(p.Name)
			prow.AddCell().SetString(p.Type)
			prow.AddCell().SetString(p.Distance)
			prow.AddCell().SetFloat(p.Rating)
		}
	}
	return f, nil
}

// WriteNeighborhoods writes the workbook for ranked to w.
func WriteNeighborhoods(w io.Writer, ranked []model.Neighborhood) error {
	f, err := Neighborhoods(ranked)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "xlsx: write workbook")
}

// SaveNeighborhoods writes the workbook for ranked to path.
func SaveNeighborhoods(path string, ranked []model.Neighborhood) error {
	f, err := Neighborhoods(ranked)
	if err != nil {
		return err
	}
	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func addHeader(sheet *xlsx.Sheet, cols []string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}
