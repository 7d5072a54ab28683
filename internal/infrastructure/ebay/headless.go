package ebay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// headlessFetcher はヘッドレスブラウザでページを描画してHTMLを取得します
// 直接のHTTP取得がブロックされた場合のフォールバックとして使います
type headlessFetcher struct {
	chromeBin string
	timeout   time.Duration
}

func (h *headlessFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(randomUserAgent()),
	)
	if h.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(h.chromeBin))
	}
	return opts
}

// fetch はURLを開き、描画後のHTMLをgoquery.Documentとして返します
func (h *headlessFetcher) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, h.allocatorOptions()...)
	defer cancelAlloc()

	// chromedp のログは抑制
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	timeout := h.timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("headless fetch failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
