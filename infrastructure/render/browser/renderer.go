// ABOUTME: Headless browser renderer for pages that build their content with JavaScript
// ABOUTME: Implements interfaces.PageRenderer on a shared chromedp browser instance

package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"newsnex-api/core/interfaces"
)

// Options configures the renderer
type Options struct {
	// Timeout bounds a single page render
	Timeout time.Duration

	// Wait is an extra pause after the body is ready, for late scripts
	Wait time.Duration

	// UserAgent overrides the browser user agent when set
	UserAgent string
}

// DefaultOptions returns the default renderer options
func DefaultOptions() Options {
	return Options{
		Timeout: 30 * time.Second,
		Wait:    500 * time.Millisecond,
	}
}

// Renderer renders pages in tabs of one shared headless browser
type Renderer struct {
	opts          Options
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	logger        interfaces.Logger
	closeOnce     sync.Once
}

var _ interfaces.PageRenderer = (*Renderer)(nil)

// New starts a headless browser allocator. The browser process itself is
// launched on the first render.
func New(opts Options, logger interfaces.Logger) *Renderer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &Renderer{
		opts:          opts,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		logger:        logger,
	}
}

// Render navigates to url in a new tab and returns the page's outer HTML
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tabCtx, cancel := chromedp.NewContext(r.browserCtx)
	defer cancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(tabCtx, r.opts.Timeout)
	defer timeoutCancel()

	// Stop the tab when the caller gives up
	stop := context.AfterFunc(ctx, timeoutCancel)
	defer stop()

	tasks := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	if r.opts.Wait > 0 {
		tasks = append(tasks, chromedp.Sleep(r.opts.Wait))
	}

	var pageHTML string
	tasks = append(tasks, chromedp.OuterHTML("html", &pageHTML))

	start := time.Now()
	if err := chromedp.Run(timeoutCtx, tasks...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	if r.logger != nil {
		r.logger.Debug("Rendered page", map[string]interface{}{
			"url":         url,
			"bytes":       len(pageHTML),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return pageHTML, nil
}

// Close shuts the browser down
func (r *Renderer) Close() error {
	r.closeOnce.Do(func() {
		r.browserCancel()
		r.allocCancel()
	})
	return nil
}
