package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/city-guide/internal/model"
	"github.com/sells-group/city-guide/internal/neighborhood"
)

func rankedLondon(t *testing.T, f neighborhood.Filter) []model.Neighborhood {
	t.Helper()
	cat, err := neighborhood.DefaultCatalog()
	require.NoError(t, err)
	return cat.Rank(f)
}

func rowStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.String()
	}
	return out
}

func TestWriteNeighborhoods(t *testing.T) {
	ranked := rankedLondon(t, neighborhood.Filter{Sort: neighborhood.SortRent, MaxCommute: 25, MaxRent: 2500})
	require.Len(t, ranked, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteNeighborhoods(&buf, ranked))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet, ok := f.Sheet[RankingSheet]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, rankingHeader, rowStrings(sheet.Rows[0]))

	first := rowStrings(sheet.Rows[1])
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "Camden", first[1])
	assert.Equal(t, "A", first[2])
	assert.Equal(t, "£2,200", first[4])
	assert.Equal(t, "2200", first[5])
	assert.Equal(t, "22", first[7])

	second := rowStrings(sheet.Rows[2])
	assert.Equal(t, "2", second[0])
	assert.Equal(t, "Shoreditch", second[1])

	places, ok := f.Sheet[PlacesSheet]
	require.True(t, ok)
	require.Greater(t, len(places.Rows), 1)
	assert.Equal(t, placesHeader, rowStrings(places.Rows[0]))
	assert.Equal(t, "Camden", places.Rows[1].Cells[0].String())
}

func TestSaveNeighborhoods(t *testing.T) {
	ranked := rankedLondon(t, neighborhood.DefaultFilter())
	path := filepath.Join(t.TempDir(), "ranking.xlsx")

	require.NoError(t, SaveNeighborhoods(path, ranked))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheet[RankingSheet].Rows, len(ranked)+1)
}

func TestNeighborhoods_Empty(t *testing.T) {
	f, err := Neighborhoods(nil)
	require.NoError(t, err)
	assert.Len(t, f.Sheet[RankingSheet].Rows, 1)
	assert.Len(t, f.Sheet[PlacesSheet].Rows, 1)
}

func TestNeighborhoods_BadRent(t *testing.T) {
	_, err := Neighborhoods([]model.Neighborhood{{ID: "x", Rent: "free", Commute: "10min"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neighborhood x")
}
