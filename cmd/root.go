package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/city-guide/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "city-guide",
	Short: "Relocation city guide and neighborhood finder",
	Long:  "Serves city guides with an always-available fallback, tracks the section in view, ranks neighborhoods against commute and rent budgets, and keeps each client's theme preference.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
