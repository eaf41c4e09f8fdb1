// Package browser renders search pages in a headless Chrome session.
package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jimezsa/jobscrape/internal/models"
	"github.com/rs/zerolog"
)

// Chrome is one browser process shared by every fetch of a run.
// Each Fetch opens and closes its own tab.
type Chrome struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	settle      time.Duration
	logger      zerolog.Logger
}

// New launches Chrome. The returned session must be closed with Close.
func New(ctx context.Context, opts models.FetchOptions, logger zerolog.Logger) (*Chrome, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug().Msgf(format, args...)
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			logger.Warn().Msgf(format, args...)
		}),
	)

	// An empty Run starts the browser so launch errors surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &Chrome{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		settle:      opts.Settle,
		logger:      logger,
	}, nil
}

func allocatorOptions(opts models.FetchOptions) []chromedp.ExecAllocatorOption {
	out := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		out = append(out, chromedp.UserAgent(ua))
	}
	if path := ExecPath(opts.ChromePath); path != "" {
		out = append(out, chromedp.ExecPath(path))
	}
	return out
}

// ExecPath prefers the configured binary and falls back to CHROME_PATH.
func ExecPath(configured string) string {
	if path := strings.TrimSpace(configured); path != "" {
		return path
	}
	return strings.TrimSpace(os.Getenv("CHROME_PATH"))
}

// Fetch loads target in a new tab and returns the rendered document markup.
// The tab is closed when ctx ends, so a page timeout on ctx bounds the load.
func (c *Chrome) Fetch(ctx context.Context, target string) (string, error) {
	tabCtx, cancel := chromedp.NewContext(c.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	actions := []chromedp.Action{
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if c.settle > 0 {
		actions = append(actions, chromedp.Sleep(c.settle))
	}

	var markup string
	actions = append(actions, chromedp.OuterHTML("html", &markup, chromedp.ByQuery))

	start := time.Now()
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("load %s: %w", target, ctxErr)
		}
		return "", fmt.Errorf("load %s: %w", target, err)
	}
	c.logger.Debug().Str("url", target).Dur("elapsed", time.Since(start)).Int("bytes", len(markup)).Msg("page rendered")
	return markup, nil
}

// Close shuts the browser down and releases the allocator.
func (c *Chrome) Close() error {
	err := chromedp.Cancel(c.ctx)
	c.cancel()
	c.allocCancel()
	return err
}
