package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/city-guide/internal/export"
	"github.com/sells-group/city-guide/internal/model"
	"github.com/sells-group/city-guide/internal/neighborhood"
)

var neighborhoodsCmd = &cobra.Command{
	Use:     "neighborhoods",
	Aliases: []string{"nb"},
	Short:   "Rank neighborhoods by commute and rent budget",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		finder, err := initFinder(cfg.Neighborhood)
		if err != nil {
			return err
		}

		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		var office *model.OfficeLocation
		if addr, _ := cmd.Flags().GetString("address"); addr != "" {
			res, err := finder.Search(ctx, addr)
			if err != nil {
				return eris.Wrap(err, "neighborhoods search")
			}
			office = &res.Office
		}

		ranked := finder.Catalog().Rank(f)

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			if err := export.SaveNeighborhoods(path, ranked); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %d neighborhoods to %s\n", len(ranked), path)
			return nil
		}

		if asGeoJSON, _ := cmd.Flags().GetBool("geojson"); asGeoJSON {
			return json.NewEncoder(os.Stdout).Encode(neighborhood.MapFeatures(office, ranked))
		}

		if office != nil {
			fmt.Fprintf(os.Stdout, "Office: %s (%s, %.4f, %.4f)\n\n",
				office.Address, office.Neighborhood, office.Coordinates.Lat(), office.Coordinates.Lng())
		}
		formatBudget(os.Stdout, f)
		if len(ranked) == 0 {
			fmt.Fprintln(os.Stderr, "No neighborhoods match the budget.")
			return nil
		}
		formatNeighborhoods(os.Stdout, ranked)
		return nil
	},
}

// filterFromFlags builds the ranking filter, starting from the configured
// budgets.
func filterFromFlags(cmd *cobra.Command) (neighborhood.Filter, error) {
	f := defaultFilter(cfg.Neighborhood)

	sortKey, _ := cmd.Flags().GetString("sort")
	f.Sort = neighborhood.ParseSortKey(sortKey)

	if cmd.Flags().Changed("max-commute") {
		f.MaxCommute, _ = cmd.Flags().GetInt("max-commute")
	}
	if cmd.Flags().Changed("max-rent") {
		f.MaxRent, _ = cmd.Flags().GetInt("max-rent")
	}
	if f.MaxCommute < 0 || f.MaxRent < 0 {
		return f, eris.New("budgets must be >= 0")
	}
	return f, nil
}

// formatBudget writes the active filter the way the catalog writes rent and
// commute.
func formatBudget(out io.Writer, f neighborhood.Filter) {
	_, _ = fmt.Fprintf(out, "Sort: %s, max commute %s, max rent %s\n\n",
		f.Sort, neighborhood.FormatMinutes(f.MaxCommute), neighborhood.FormatRent(f.MaxRent))
}

// formatNeighborhoods writes a ranked table to out.
func formatNeighborhoods(out io.Writer, ranked []model.Neighborhood) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tNAME\tGRADE\tSCORE\tRENT\tCOMMUTE\tWALK\tTRANSIT")
	for i, n := range ranked {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%d\t%d\n",
			i+1, n.Name, n.Grade, n.Score, n.Rent, n.Commute, n.Stats.WalkScore, n.Stats.TransitScore)
	}
	_ = w.Flush()
}

func init() {
	neighborhoodsCmd.Flags().String("address", "", "office address to anchor the search on")
	neighborhoodsCmd.Flags().String("sort", string(neighborhood.SortBestMatch), "best-match, rent, commute, score or closer-look")
	neighborhoodsCmd.Flags().Int("max-commute", 60, "maximum commute in minutes (default from config)")
	neighborhoodsCmd.Flags().Int("max-rent", 3000, "maximum monthly rent in GBP (default from config)")
	neighborhoodsCmd.Flags().Bool("geojson", false, "print map markers as GeoJSON")
	neighborhoodsCmd.Flags().String("xlsx", "", "write the ranking to an .xlsx file")

	rootCmd.AddCommand(neighborhoodsCmd)
}
