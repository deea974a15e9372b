package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/city-guide/internal/section"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Inspect guide sections and the scroll tracker",
}

// -- sections list --

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the navigation sections",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatSections(os.Stdout, section.Entries())
		return nil
	},
}

// -- sections active --

var sectionsActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Report the active section for a scroll position",
	Example: `  city-guide sections active --scroll 500 \
    --anchor overview=0 --anchor education=600 --anchor transportation=1200`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, _ := cmd.Flags().GetStringArray("anchor")
		anchors, err := parseAnchors(raw)
		if err != nil {
			return err
		}
		scroll, _ := cmd.Flags().GetInt("scroll")
		target, _ := cmd.Flags().GetString("target")
		formatView(os.Stdout, os.Stderr, section.NewLayout(section.IDs(), anchors), scroll, target)
		return nil
	},
}

// formatView writes the tracker state for scroll. A target without an anchor
// is a no-op: it is noted on errOut and no scroll_to line is written.
func formatView(out, errOut io.Writer, layout *section.Layout, scroll int, target string) {
	view := layout.Evaluate(scroll)
	_, _ = fmt.Fprintf(out, "active: %s\nsidebar: %t\n", view.Active, view.ShowSidebar)
	if target == "" {
		return
	}
	if off, ok := layout.ScrollTarget(target); ok {
		_, _ = fmt.Fprintf(out, "scroll_to: %d\n", off)
		return
	}
	_, _ = fmt.Fprintf(errOut, "section %q has no anchor, nothing to scroll to\n", target)
}

// parseAnchors parses id=offset pairs.
func parseAnchors(raw []string) ([]section.Anchor, error) {
	anchors := make([]section.Anchor, 0, len(raw))
	for _, r := range raw {
		id, off, ok := strings.Cut(r, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, eris.Errorf("invalid anchor %q, want id=offset", r)
		}
		n, err := strconv.Atoi(strings.TrimSpace(off))
		if err != nil {
			return nil, eris.Wrapf(err, "invalid anchor offset %q", r)
		}
		anchors = append(anchors, section.Anchor{ID: strings.TrimSpace(id), Offset: n})
	}
	return anchors, nil
}

func formatSections(out io.Writer, entries []section.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLABEL\tICON")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Label, e.Icon)
	}
	_ = w.Flush()
}

func init() {
	sectionsActiveCmd.Flags().Int("scroll", 0, "vertical scroll position in pixels")
	sectionsActiveCmd.Flags().StringArray("anchor", nil, "section offset as id=offset (repeatable)")
	sectionsActiveCmd.Flags().String("target", "", "also print the scroll position for this section")

	sectionsCmd.AddCommand(sectionsListCmd)
	sectionsCmd.AddCommand(sectionsActiveCmd)
	rootCmd.AddCommand(sectionsCmd)
}
