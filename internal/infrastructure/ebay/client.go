package ebay

import (
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	sourceDirect   = "ebay-direct"
	sourceProxy    = "ebay-proxy"
	sourceHeadless = "ebay-headless"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// ProxyOptions はスクレイピング用プロキシの設定です
type ProxyOptions struct {
	URL      string
	User     string
	Password string
}

// proxyURL はプロキシ設定を検証してURLを返します
// 未設定、不正なURL、example.com などのプレースホルダーの場合は nil を返します
func proxyURL(opts ProxyOptions, log *slog.Logger) *url.URL {
	if opts.URL == "" {
		return nil
	}

	u, err := url.Parse(opts.URL)
	if err != nil || u.Host == "" {
		log.Warn("invalid proxy URL provided, skipping proxy configuration",
			slog.String("proxy", opts.URL), slog.Any("err", err))
		return nil
	}

	if strings.Contains(u.Hostname(), "example.com") {
		return nil
	}

	if opts.User != "" && opts.Password != "" {
		u.User = url.UserPassword(opts.User, opts.Password)
	}
	return u
}

// newHTTPClient はタイムアウトとプロキシを設定したクライアントと、その取得経路のラベルを返します
func newHTTPClient(timeout time.Duration, proxy ProxyOptions, log *slog.Logger) (*http.Client, string) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	source := sourceDirect

	if u := proxyURL(proxy, log); u != nil {
		transport.Proxy = http.ProxyURL(u)
		source = sourceProxy
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, source
}
