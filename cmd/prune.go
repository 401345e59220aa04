package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/observability"
)

var pruneDays int

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete persisted error records older than the cutoff.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pruneDays <= 0 {
			return fmt.Errorf("--days must be positive")
		}
		logger := observability.GetLogger()

		reporter := errorreport.New(cfg.Reporting, nil, logger)
		removed, err := reporter.PruneOlderThan(pruneDays)
		if err != nil {
			return err
		}

		logger.Info("Pruned error records", zap.Int("removed", removed), zap.Int("days", pruneDays))
		return nil
	},
}

func init() {
	pruneCmd.Flags().IntVar(&pruneDays, "days", 30, "delete records older than this many days")
	rootCmd.AddCommand(pruneCmd)
}
