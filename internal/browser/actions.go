package browser

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/config"
	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/taxonomy"
)

// Primitives is the slice of Page the action wrapper drives. Tests substitute
// a fake to exercise failure paths without a browser.
type Primitives interface {
	errorreport.PageInfo
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	Text(ctx context.Context, selector string) (string, error)
	Visible(ctx context.Context, selector string) (bool, error)
	WaitVisible(ctx context.Context, selector string) error
}

var _ Primitives = (*Page)(nil)

// Actions wraps every page primitive with the reporting contract: actions
// with no safe fallback report and fail, probe-style actions report and
// return a degraded default so the caller's flow continues.
type Actions struct {
	page    Primitives
	handler *errorreport.Handler
	logger  *zap.Logger

	actionTimeout time.Duration
	navTimeout    time.Duration
}

// NewActions builds the wrapper around a page and an error handler.
func NewActions(page Primitives, handler *errorreport.Handler, cfg config.BrowserConfig, logger *zap.Logger) *Actions {
	return &Actions{
		page:          page,
		handler:       handler,
		logger:        logger.Named("actions"),
		actionTimeout: cfg.ActionTimeout,
		navTimeout:    cfg.NavigationTimeout,
	}
}

// Page exposes the underlying primitives, e.g. for direct screenshot use.
func (a *Actions) Page() Primitives { return a.page }

func actionDetails(action, selector string, extra map[string]any) map[string]any {
	d := map[string]any{"action": action}
	if selector != "" {
		d["selector"] = selector
	}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

// Navigate loads a URL. Report-and-fail.
func (a *Actions) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, a.navTimeout)
	defer cancel()

	if err := a.page.Navigate(navCtx, url); err != nil {
		entry := classify(err, taxonomy.NavigationTimeout, taxonomy.NavigationFailed)
		_, herr := a.handler.Handle(ctx, entry, actionDetails("navigate", "", map[string]any{"url": url}), true)
		return herr
	}
	return nil
}

// Click clicks the element. Report-and-fail.
func (a *Actions) Click(ctx context.Context, selector string) error {
	actCtx, cancel := context.WithTimeout(ctx, a.actionTimeout)
	defer cancel()

	if err := a.page.Click(actCtx, selector); err != nil {
		entry := classify(err, taxonomy.ElementTimeout, taxonomy.ElementNotClickable)
		_, herr := a.handler.Handle(ctx, entry, actionDetails("click", selector, nil), true)
		return herr
	}
	return nil
}

// Fill sets an input's value. Report-and-fail.
func (a *Actions) Fill(ctx context.Context, selector, value string) error {
	actCtx, cancel := context.WithTimeout(ctx, a.actionTimeout)
	defer cancel()

	if err := a.page.Fill(actCtx, selector, value); err != nil {
		entry := classify(err, taxonomy.ElementTimeout, taxonomy.ElementWrongState)
		_, herr := a.handler.Handle(ctx, entry, actionDetails("fill", selector, map[string]any{"value": value}), true)
		return herr
	}
	return nil
}

// WaitVisible waits for the element to render. Report-and-fail.
func (a *Actions) WaitVisible(ctx context.Context, selector string) error {
	actCtx, cancel := context.WithTimeout(ctx, a.actionTimeout)
	defer cancel()

	if err := a.page.WaitVisible(actCtx, selector); err != nil {
		entry := classify(err, taxonomy.ElementTimeout, taxonomy.ElementNotVisible)
		_, herr := a.handler.Handle(ctx, entry, actionDetails("wait_visible", selector, nil), true)
		return herr
	}
	return nil
}

// IsVisible probes element visibility. Report-only: a failed probe is
// reported and answered with false so the caller's logic continues.
func (a *Actions) IsVisible(ctx context.Context, selector string) bool {
	actCtx, cancel := context.WithTimeout(ctx, a.actionTimeout)
	defer cancel()

	visible, err := a.page.Visible(actCtx, selector)
	if err != nil {
		entry := classify(err, taxonomy.ElementTimeout, taxonomy.ElementNotVisible)
		a.handler.Handle(ctx, entry, actionDetails("is_visible", selector, nil), false)
		a.logger.Debug("Visibility probe degraded to false", zap.String("selector", selector))
		return false
	}
	return visible
}

// Text reads element text. Report-only: failures are reported and answered
// with an empty string.
func (a *Actions) Text(ctx context.Context, selector string) string {
	actCtx, cancel := context.WithTimeout(ctx, a.actionTimeout)
	defer cancel()

	text, err := a.page.Text(actCtx, selector)
	if err != nil {
		entry := classify(err, taxonomy.ElementTimeout, taxonomy.ElementTextRead)
		a.handler.Handle(ctx, entry, actionDetails("text", selector, nil), false)
		a.logger.Debug("Text read degraded to empty string", zap.String("selector", selector))
		return ""
	}
	return text
}

// AssertText compares element text against an expected value.
// Report-and-fail, both for unreadable text and for a mismatch.
func (a *Actions) AssertText(ctx context.Context, selector, expected string) error {
	actCtx, cancel := context.WithTimeout(ctx, a.actionTimeout)
	defer cancel()

	actual, err := a.page.Text(actCtx, selector)
	if err != nil {
		entry := classify(err, taxonomy.ElementTimeout, taxonomy.ElementTextRead)
		_, herr := a.handler.Handle(ctx, entry, actionDetails("assert_text", selector, map[string]any{"expected": expected}), true)
		return herr
	}

	if actual != expected {
		details := actionDetails("assert_text", selector, map[string]any{
			"expected": expected,
			"actual":   actual,
			"message":  fmt.Sprintf("expected %q, got %q", expected, actual),
		})
		_, herr := a.handler.Handle(ctx, taxonomy.AssertionTextMismatch, details, true)
		return herr
	}
	return nil
}
