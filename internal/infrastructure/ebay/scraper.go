package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"jo3qma.com/listify/internal/domain/model"
	"jo3qma.com/listify/internal/domain/repository"
)

// DefaultBaseURL はeBayのトップURLです
const DefaultBaseURL = "https://www.ebay.com"

// Options はeBayスクレイパーの設定です
type Options struct {
	BaseURL          string
	Timeout          time.Duration
	Proxy            ProxyOptions
	MaxRetries       int
	RetryDelay       time.Duration
	HeadlessFallback bool   // 直接取得に失敗した場合にヘッドレスブラウザで再取得する
	ChromeBin        string // 空ならchromedpの既定の探索に任せる
}

// ebaySoldScraper はeBayの販売済み検索結果をスクレイピングして販売実績を取得する実装です
// 腐敗防止層（Anti-Corruption Layer）として、外部サイトの不安定なHTMLを
// ドメインモデルに変換する責務を持ちます
type ebaySoldScraper struct {
	client   *http.Client
	source   string
	baseURL  string
	retry    retryPolicy
	headless *headlessFetcher // nil の場合フォールバックしない
	now      func() time.Time
	log      *slog.Logger
}

// NewEbaySoldScraper は新しいSoldListingRepositoryの実装を作成します
func NewEbaySoldScraper(opts Options, log *slog.Logger) repository.SoldListingRepository {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client, source := newHTTPClient(opts.Timeout, opts.Proxy, log)
	s := newEbaySoldScraper(client, source, baseURL, log)
	s.retry.maxAttempts = opts.MaxRetries
	s.retry.baseDelay = opts.RetryDelay
	if opts.HeadlessFallback {
		s.headless = &headlessFetcher{
			chromeBin: opts.ChromeBin,
			timeout:   3 * opts.Timeout,
		}
	}
	return s
}

// newEbaySoldScraper はテスト容易性のための内部コンストラクタです。
// 本番コードは NewEbaySoldScraper を利用し、テストでは http.Client/baseURL を注入します。
func newEbaySoldScraper(client *http.Client, source, baseURL string, log *slog.Logger) *ebaySoldScraper {
	return &ebaySoldScraper{
		client:  client,
		source:  source,
		baseURL: baseURL,
		retry:   retryPolicy{maxAttempts: 1, log: log},
		now:     time.Now,
		log:     log,
	}
}

// FetchSellerSales は出品者の販売済み検索結果を取得し、直近 timeframeDays 日分の販売実績を返します
func (s *ebaySoldScraper) FetchSellerSales(ctx context.Context, seller string, timeframeDays int) (*model.SellerSales, error) {
	timeframeDays = NormalizeTimeframe(timeframeDays)
	log := s.log.With(slog.String("scrape_id", uuid.NewString()), slog.String("seller", seller))

	targetURL, err := s.sellerURL(seller)
	if err != nil {
		return nil, err
	}

	doc, source, err := s.fetchDocument(ctx, targetURL, log)
	if err != nil {
		return nil, err
	}

	result := extractSoldListings(doc, timeframeDays, s.now())
	log.Info("extracted sold listings",
		slog.String("source", source),
		slog.Int("timeframe_days", timeframeDays),
		slog.Int("found", len(result.Sales)),
		slog.Int("rejected", result.Rejections.Total()),
		slog.Int("rejected_title", result.Rejections.Title),
		slog.Int("rejected_price", result.Rejections.Price),
		slog.Int("rejected_date", result.Rejections.Date),
		slog.Int("rejected_stale", result.Rejections.Stale),
		slog.Int("rejected_duplicate", result.Rejections.Duplicate))

	return &model.SellerSales{
		Seller:        seller,
		TimeframeDays: timeframeDays,
		Sales:         result.Sales,
		Source:        source,
	}, nil
}

// sellerURL は出品者の販売済み・終了済み出品の検索URLを構築します
// 例: https://www.ebay.com/sch/i.html?_ssn={seller}&LH_Sold=1&LH_Complete=1
func (s *ebaySoldScraper) sellerURL(seller string) (string, error) {
	u, err := url.Parse(s.baseURL + "/sch/i.html")
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}

	q := u.Query()
	q.Set("_ssn", seller)
	q.Set("LH_Sold", "1")
	q.Set("LH_Complete", "1")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// fetchDocument はHTTPで取得を試み、失敗した場合は設定に応じてヘッドレスブラウザで再取得します
// 戻り値の文字列は実際に使われた取得経路です
func (s *ebaySoldScraper) fetchDocument(ctx context.Context, targetURL string, log *slog.Logger) (*goquery.Document, string, error) {
	var doc *goquery.Document
	err := s.retry.do(ctx, "fetch seller page", func() error {
		var fetchErr error
		doc, fetchErr = fetchHTML(ctx, s.client, targetURL)
		return fetchErr
	})
	if err == nil {
		return doc, s.source, nil
	}

	if s.headless == nil || ctx.Err() != nil {
		return nil, "", err
	}

	log.Warn("direct fetch failed, falling back to headless browser", slog.Any("err", err))
	doc, headlessErr := s.headless.fetch(ctx, targetURL)
	if headlessErr != nil {
		return nil, "", errors.Join(err, headlessErr)
	}
	return doc, sourceHeadless, nil
}
