package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/config"
)

// Page is a single tab. It exposes the raw browser primitives the action
// wrapper builds on; errors returned here are the underlying chromedp
// errors, classification happens one layer up.
type Page struct {
	id     string
	cfg    config.BrowserConfig
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	isClosed bool
}

func newPage(ctx context.Context, cancel context.CancelFunc, cfg config.BrowserConfig, logger *zap.Logger) *Page {
	pageID := uuid.NewString()
	return &Page{
		id:     pageID,
		cfg:    cfg,
		logger: logger.With(zap.String("page_id", pageID)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// initialize applies viewport metrics and any configured extra HTTP headers
// before the first navigation.
func (p *Page) initialize() error {
	tasks := chromedp.Tasks{
		emulation.SetDeviceMetricsOverride(p.cfg.ViewportWidth, p.cfg.ViewportHeight, 1.0, false),
	}
	if len(p.cfg.ExtraHeaders) > 0 {
		headers := make(network.Headers, len(p.cfg.ExtraHeaders))
		for k, v := range p.cfg.ExtraHeaders {
			headers[k] = v
		}
		tasks = append(tasks, network.Enable(), network.SetExtraHTTPHeaders(headers))
	}
	if err := chromedp.Run(p.ctx, tasks); err != nil {
		return fmt.Errorf("page setup tasks failed: %w", err)
	}
	return nil
}

// run executes chromedp actions so they respect both the page lifetime and
// the caller's context. A caller deadline surfaces as the caller context's
// error, which the classifier upstream relies on.
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// ID returns the page's unique identifier.
func (p *Page) ID() string { return p.id }

// URL reads the current page location.
func (p *Page) URL(ctx context.Context) (string, error) {
	var url string
	if err := p.run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read page URL: %w", err)
	}
	return url, nil
}

// Title reads the current document title.
func (p *Page) Title(ctx context.Context) (string, error) {
	var title string
	if err := p.run(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("failed to read page title: %w", err)
	}
	return title, nil
}

// Screenshot captures the page as PNG bytes.
func (p *Page) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	var buf []byte
	var action chromedp.Action
	if fullPage {
		action = chromedp.FullScreenshot(&buf, 90)
	} else {
		action = chromedp.CaptureScreenshot(&buf)
	}
	if err := p.run(ctx, action); err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}

// Navigate loads the URL and waits for the document body to be ready.
func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// Click dispatches a click on the first element matching the selector.
func (p *Page) Click(ctx context.Context, selector string) error {
	return p.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// Fill sets the value of the first element matching the selector.
func (p *Page) Fill(ctx context.Context, selector, value string) error {
	return p.run(ctx, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

// Text reads the visible text content of the first matching element.
func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	var out string
	if err := p.run(ctx, chromedp.Text(selector, &out, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return out, nil
}

// jsIsVisible checks presence plus computed visibility in one round trip, so
// a missing element is a false result rather than a wait.
const jsIsVisible = `(() => {
	const el = document.querySelector(%q);
	if (!el) return false;
	const style = window.getComputedStyle(el);
	const rect = el.getBoundingClientRect();
	return style.display !== 'none' && style.visibility !== 'hidden' && rect.width > 0 && rect.height > 0;
})()`

// Visible reports whether the first matching element exists and is rendered.
func (p *Page) Visible(ctx context.Context, selector string) (bool, error) {
	var visible bool
	if err := p.run(ctx, chromedp.Evaluate(fmt.Sprintf(jsIsVisible, selector), &visible)); err != nil {
		return false, err
	}
	return visible, nil
}

// WaitVisible blocks until the first matching element is visible.
func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	return p.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Close releases the tab. Safe to call more than once.
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isClosed {
		return
	}
	p.isClosed = true
	p.cancel()
}
