package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suma737/webharness/internal/browser"
	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/observability"
	"github.com/suma737/webharness/internal/scenario"
	"github.com/suma737/webharness/internal/taxonomy"
)

var runParallel int

var runCmd = &cobra.Command{
	Use:   "run [scenario files...]",
	Short: "Execute YAML scenario files against a browser.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if runParallel < 1 {
			return fmt.Errorf("--parallel must be at least 1")
		}
		ctx := cmd.Context()
		logger := observability.GetLogger()

		b, err := browser.New(ctx, cfg.Browser, logger)
		if err != nil {
			// Browser startup failures go through the same pipeline, with no
			// page attached.
			reporter := errorreport.New(cfg.Reporting, nil, logger)
			handler := errorreport.NewHandler(reporter, logger)
			_, herr := handler.Handle(ctx, taxonomy.FrameworkBrowserStart, map[string]any{
				"message": err.Error(),
			}, true)
			return herr
		}
		defer b.Close()

		// Each scenario gets its own page, reporter and runner; failures in
		// one scenario never cancel the others.
		var g errgroup.Group
		g.SetLimit(runParallel)

		for _, path := range args {
			g.Go(func() error {
				page, err := b.NewPage()
				if err != nil {
					return fmt.Errorf("scenario %s: %w", path, err)
				}
				defer page.Close()

				reporter := errorreport.New(cfg.Reporting, page, logger)
				handler := errorreport.NewHandler(reporter, logger)
				actions := browser.NewActions(page, handler, cfg.Browser, logger)
				runner := scenario.NewRunner(actions, handler, logger)

				if err := runner.RunFile(ctx, path); err != nil {
					return fmt.Errorf("scenario %s: %w", path, err)
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("All scenarios passed", zap.Int("count", len(args)))
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runParallel, "parallel", 1, "number of scenarios to run concurrently")
	rootCmd.AddCommand(runCmd)
}
