package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted posting accepted without a
// headless render.
const MinContentLength = 500

// settleDelay gives client-side job boards time to populate the description.
const settleDelay = 2 * time.Second

// NeedsBrowser reports whether text is too short to be a server-rendered posting.
func NeedsBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// RenderFunc returns the fully rendered HTML of a page.
type RenderFunc func(ctx context.Context, url string) (string, error)

var chromeFlags = []chromedp.ExecAllocatorOption{
	chromedp.Headless,
	chromedp.DisableGPU,
	chromedp.NoSandbox,
	chromedp.Flag("disable-dev-shm-usage", true),
}

// RenderWithChrome loads pages in a headless Chrome or Chromium found on PATH.
// Each call starts and tears down its own browser.
func RenderWithChrome(timeout time.Duration) RenderFunc {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromeFlags...)

	return func(ctx context.Context, url string) (string, error) {
		ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
		defer cancelTimeout()

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		defer cancelAlloc()
		tabCtx, cancelTab := chromedp.NewContext(allocCtx)
		defer cancelTab()

		var page string
		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(settleDelay),
			chromedp.OuterHTML("html", &page, chromedp.ByQuery),
		); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", url, err)
		}
		return page, nil
	}
}
