package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/city-guide/internal/cityguide"
	"github.com/sells-group/city-guide/internal/section"
)

var guideCmd = &cobra.Command{
	Use:   "guide [city]",
	Short: "Load a city guide and list its sections",
	Long:  "Loads the guide for a city (London by default). Upstream failures are logged and the bundled guide is shown instead.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		city := "London"
		if len(args) == 1 {
			city = args[0]
		}

		var cache cityguide.Cache
		if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache && cfg.Guide.Live {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			cache = st
		}

		provider, err := initProvider(cfg.Guide, cache)
		if err != nil {
			return err
		}

		res := provider.FetchCityData(ctx, city)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Data)
		}
		formatGuide(os.Stdout, res)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <city> <question...>",
	Short: "Ask the guide generator a follow-up question",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := initProvider(cfg.Guide, nil)
		if err != nil {
			return err
		}

		data, err := provider.AskCityQuestion(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return eris.Wrap(err, "ask")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	},
}

// formatGuide writes a summary of a loaded guide to out.
func formatGuide(out io.Writer, res cityguide.Result) {
	d := res.Data
	_, _ = fmt.Fprintf(out, "%s, %s (source: %s)\n", d.Name, d.Country, res.Source)
	if d.Weather != nil {
		_, _ = fmt.Fprintf(out, "Weather: %s %s, %s\n", d.Weather.Icon, d.Weather.Temperature, d.Weather.Condition)
	}
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tSECTION\tTITLE\tITEMS")
	for i, s := range section.Build(d) {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, s.ID, s.Title, len(s.Items))
	}
	_ = w.Flush()
}

func init() {
	guideCmd.Flags().Bool("json", false, "print the full guide as JSON")
	guideCmd.Flags().Bool("no-cache", false, "skip the city cache")

	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(askCmd)
}
