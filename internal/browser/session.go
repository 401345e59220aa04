// Package browser drives Chrome through chromedp and wraps every page action
// so failures funnel into the error reporting pipeline.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/config"
)

// Browser owns one Chrome process. Pages (tabs) are created from it; each
// test worker process runs its own Browser.
type Browser struct {
	cfg    config.BrowserConfig
	logger *zap.Logger

	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// New starts a Chrome instance. The returned Browser must be closed.
func New(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so startup failures surface
	// here instead of on the first page action.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Browser{
		cfg:         cfg,
		logger:      logger.Named("browser"),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      cancel,
	}, nil
}

// NewPage opens a new tab configured with the harness viewport and headers.
func (b *Browser) NewPage() (*Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(b.ctx)

	p := newPage(tabCtx, tabCancel, b.cfg, b.logger)
	if err := p.initialize(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to initialize page: %w", err)
	}
	return p, nil
}

// Close tears down every tab and the browser process.
func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}
