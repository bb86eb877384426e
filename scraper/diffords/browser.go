package diffords

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"cocktail-popularity/utils"
)

// BrowserFetcher renders pages in headless Chrome and returns body.innerText.
// Used for pages that build their list client-side.
type BrowserFetcher struct {
	logger      *utils.Logger
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewBrowserFetcher starts a Chrome allocator. chromeBin may be empty, in which
// case the binary is looked up on the system. Call Close when done.
func NewBrowserFetcher(ctx context.Context, userAgent, chromeBin string, logger *utils.Logger) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[diffords] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return &BrowserFetcher{logger: logger, allocCtx: allocCtx, cancelAlloc: cancel}
}

func (f *BrowserFetcher) FetchText(ctx context.Context, url string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 90*time.Second)
	defer cancelTimeout()

	// Stop the tab when the caller's context is cancelled.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	res, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(url))
	if err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if res != nil && (res.Status < 200 || res.Status > 299) {
		return "", &StatusError{URL: url, StatusCode: int(res.Status)}
	}

	var text string
	err = chromedp.Run(tabCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.body.innerText`, &text),
	)
	if err != nil {
		return "", fmt.Errorf("extract text %s: %w", url, err)
	}
	return text, nil
}

// Close shuts down the browser.
func (f *BrowserFetcher) Close() {
	f.cancelAlloc()
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
