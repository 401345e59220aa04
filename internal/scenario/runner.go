package scenario

import (
	"context"

	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/browser"
	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/taxonomy"
)

// Runner executes scenarios step by step through the wrapped page actions.
// Bad scenario input is funneled through the same reporting pipeline as
// browser failures, under the DATA category.
type Runner struct {
	actions *browser.Actions
	handler *errorreport.Handler
	logger  *zap.Logger
}

// NewRunner builds a runner bound to one page's actions.
func NewRunner(actions *browser.Actions, handler *errorreport.Handler, logger *zap.Logger) *Runner {
	return &Runner{
		actions: actions,
		handler: handler,
		logger:  logger.Named("runner"),
	}
}

// RunFile loads a scenario file and runs it. Load failures are reported as
// DATA errors and surfaced as classified errors.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	sc, err := Load(path)
	if err != nil {
		_, herr := r.handler.Handle(ctx, taxonomy.DataParse, map[string]any{
			"file":    path,
			"message": err.Error(),
		}, true)
		return herr
	}
	return r.Run(ctx, sc)
}

// Run executes every step in order, stopping at the first classified failure.
func (r *Runner) Run(ctx context.Context, sc *Scenario) error {
	log := r.logger.With(zap.String("scenario", sc.Name))
	log.Info("Running scenario", zap.Int("steps", len(sc.Steps)))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runStep(ctx, step); err != nil {
			log.Warn("Scenario step failed",
				zap.Int("step", i+1),
				zap.String("action", step.Action),
				zap.Error(err))
			return err
		}
	}

	log.Info("Scenario passed")
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	switch step.Action {
	case ActionNavigate:
		return r.actions.Navigate(ctx, step.URL)
	case ActionClick:
		return r.actions.Click(ctx, step.Selector)
	case ActionFill:
		return r.actions.Fill(ctx, step.Selector, step.Value)
	case ActionWaitVisible:
		return r.actions.WaitVisible(ctx, step.Selector)
	case ActionAssertText:
		return r.actions.AssertText(ctx, step.Selector, step.Expected)
	case ActionCheckVisible:
		// Probe only; visibility result lands in the log, never fails the run.
		visible := r.actions.IsVisible(ctx, step.Selector)
		r.logger.Info("Visibility probe",
			zap.String("selector", step.Selector),
			zap.Bool("visible", visible))
		return nil
	default:
		// Load validates actions; reaching this means the scenario bypassed it.
		_, herr := r.handler.Handle(ctx, taxonomy.DataInvalid, map[string]any{
			"action":  step.Action,
			"message": "unknown scenario action",
		}, true)
		return herr
	}
}
