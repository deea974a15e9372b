package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/city-guide/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or toggle a client's theme preference",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client, _ := cmd.Flags().GetString("client")
		prefersDark, _ := cmd.Flags().GetBool("prefers-dark")
		toggle, _ := cmd.Flags().GetBool("toggle")

		svc := theme.NewService(st)
		var s theme.State
		if toggle {
			s, err = svc.Toggle(ctx, client, prefersDark)
		} else {
			s, err = svc.Get(ctx, client, prefersDark)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, s.Name())
		return nil
	},
}

func init() {
	themeCmd.Flags().String("client", "cli", "client id the preference belongs to")
	themeCmd.Flags().Bool("toggle", false, "flip and persist the preference")
	themeCmd.Flags().Bool("prefers-dark", false, "system preference used when nothing is stored")

	rootCmd.AddCommand(themeCmd)
}
