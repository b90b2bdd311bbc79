// Package scrape drives a headless browser across job-site result pages and
// maps the rendered markup onto Job records via per-site rules.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser is the single headless-browser session used for the whole scraping
// stage. It is acquired once, shared by all sites and pages, and must be
// released with Close before the pipeline proceeds.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewBrowser launches a headless Chrome session. Requires Chrome/Chromium on
// the system.
func NewBrowser(ctx context.Context) (*Browser, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
		)...,
	)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	b := &Browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
	}

	// Start the browser eagerly so launch failures surface at acquisition
	// time, not on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to start headless browser: %w", err)
	}

	return b, nil
}

// Close tears down the browser session. Safe to call multiple times.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
}

// Load navigates to url and lets the page settle before returning.
func (b *Browser) Load(url string, settle time.Duration) error {
	return b.run(
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Let client-side rendering populate the cards before capture.
		chromedp.Sleep(settle),
	)
}

// Capture returns the current page markup. It scrolls to the bottom first so
// lazily-loaded cards render, then waits out the settle interval.
func (b *Browser) Capture(settle time.Duration) (string, error) {
	var html string
	err := b.run(
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight); undefined`, nil),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	return html, err
}

// NextControl reports whether the next-page control exists and is enabled.
func (b *Browser) NextControl(selector string) (bool, error) {
	probe := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !!el && !el.disabled; })()`,
		selector)

	var hasNext bool
	if err := b.run(chromedp.Evaluate(probe, &hasNext)); err != nil {
		return false, err
	}
	return hasNext, nil
}

// ClickNext advances to the next result page and lets it settle.
func (b *Browser) ClickNext(selector string, settle time.Duration) error {
	return b.run(
		chromedp.Click(selector, chromedp.NodeVisible),
		chromedp.Sleep(settle),
	)
}

// run executes chromedp actions against the shared session.
func (b *Browser) run(actions ...chromedp.Action) error {
	return chromedp.Run(b.ctx, actions...)
}
