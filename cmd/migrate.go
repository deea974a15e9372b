package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update store tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Store %s migrated.\n", cfg.Store.Driver)
		return st.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
