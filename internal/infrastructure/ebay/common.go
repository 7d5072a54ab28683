package ebay

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// httpStatusError は200以外のステータスが返った場合のエラーです
type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("failed to fetch page: status %d", e.StatusCode)
}

// retryable は再試行で回復する見込みのあるステータスかどうかを返します
func (e *httpStatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// fetchHTML は指定されたURLからHTMLを取得してgoquery.Documentを返します
// User-Agentはリクエストごとに入れ替え、Content-Typeの文字コードに従ってデコードします
func fetchHTML(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			fmt.Printf("warning: failed to close response body: %v\n", closeErr)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, &httpStatusError{StatusCode: res.StatusCode}
	}

	body, err := charset.NewReader(res.Body, res.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// normalizeText は連続する空白を1つにまとめ、前後の空白を取り除きます
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstText は selectors を順に試し、最初に空でないテキストを返します
func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := normalizeText(s.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr は selectors を順に試し、最初に見つかった属性値をそのまま返します
func firstAttr(s *goquery.Selection, selectors []string, attr string) string {
	for _, sel := range selectors {
		if v, exists := s.Find(sel).First().Attr(attr); exists {
			return v
		}
	}
	return ""
}
