package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/maintenance"
	"github.com/suma737/webharness/internal/observability"
)

var reportSuggest bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate persisted error records into a maintenance report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := observability.GetLogger()

		reporter := errorreport.New(cfg.Reporting, nil, logger)
		aggregator := maintenance.NewAggregator(reporter, logger)

		report, err := aggregator.BuildReport()
		if err != nil {
			return err
		}

		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if !reportSuggest {
			return nil
		}
		if !cfg.AI.Enabled {
			return fmt.Errorf("--suggest requires ai.enabled in the configuration")
		}

		gen, err := maintenance.NewGeminiGenerator(ctx, cfg.AI, logger)
		if err != nil {
			return err
		}
		suggestion, err := maintenance.NewSuggester(gen, logger).Suggest(ctx, report)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), suggestion)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportSuggest, "suggest", false, "ask the configured AI model for maintenance suggestions")
	rootCmd.AddCommand(reportCmd)
}
