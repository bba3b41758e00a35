package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/transport-report/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "transport-report",
	Short: "Transport job reporting from dispatch spreadsheets",
	Long:  "Loads a dispatch export (XLSX or CSV), normalizes it into canonical job records, and reports job counts, cost breakdowns, route rankings and delivery success over an optional date and route filter.",
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
