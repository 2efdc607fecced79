package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Browser loads pages in a fresh Chromium instance per call, for sites
// that render their slots with JavaScript.
type Browser struct {
	Headless bool
	// Timeout caps navigation plus the load wait.
	Timeout time.Duration
	// RenderWait is extra time given to scripts after the load event.
	RenderWait time.Duration

	log *slog.Logger
}

func NewBrowser(headless bool, timeout, renderWait time.Duration, log *slog.Logger) *Browser {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Browser{
		Headless:   headless,
		Timeout:    timeout,
		RenderWait: renderWait,
		log:        log,
	}
}

func (b *Browser) Fetch(ctx context.Context, url string) (string, error) {
	l := launcher.New().
		Context(ctx).
		Leakless(false).
		Headless(b.Headless).
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows")
	defer l.Cleanup()

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connecting to browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			b.log.Debug("can't close browser", slog.String("error", err.Error()))
		}
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}

	err = rod.Try(func() {
		page.Timeout(b.Timeout).MustNavigate(url).MustWaitLoad()
	})
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}

	if b.RenderWait > 0 {
		if err := sleep(ctx, b.RenderWait); err != nil {
			return "", err
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}

	b.log.Debug("page loaded", slog.String("url", url), slog.Int("bytes", len(html)))

	return html, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
