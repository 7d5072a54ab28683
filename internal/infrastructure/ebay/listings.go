package ebay

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"jo3qma.com/listify/internal/domain/model"
)

// 出品一覧: 旧レイアウトの .s-item と新レイアウトの .s-card の両方を対象にします
const listingSelector = ".s-item, .s-card"

var (
	titleSelectors = []string{".s-item__title", ".s-card__title"}
	priceSelectors = []string{".s-item__price", ".s-card__price"}
	linkSelectors  = []string{"a.s-item__link", "a.s-card__link"}

	// 販売日が書かれている可能性のある要素。具体的なものから順に並べます
	soldDateSelectors = []string{
		".s-item__title--tagblock .POSITIVE",
		".s-item__title--tagblock",
		".s-item__caption--signal.POSITIVE",
		".s-item__caption--signal",
		".s-item__caption",
		".s-card__caption",
		".s-item__ended-date",
	}
)

// placeholderTitles は検索結果に混ざるダミー要素のタイトルです（小文字で比較）
var placeholderTitles = map[string]struct{}{
	"shop on ebay": {},
}

// タイトルに付与されるバッジや読み上げ用テキスト
const (
	newListingBadge  = "new listing"
	opensInNewWindow = "opens in a new window or tab"
)

// rejectReason は出品が結果から除外された理由です
type rejectReason int

const (
	accepted rejectReason = iota
	rejectedTitle
	rejectedPrice
	rejectedDate
	rejectedStale
	rejectedDuplicate
)

// Rejections は除外理由ごとの件数です。ログ出力用に抽出結果と一緒に返します
type Rejections struct {
	Title     int
	Price     int
	Date      int
	Stale     int
	Duplicate int
}

// Total は除外された出品の合計件数を返します
func (r Rejections) Total() int {
	return r.Title + r.Price + r.Date + r.Stale + r.Duplicate
}

func (r *Rejections) add(reason rejectReason) {
	switch reason {
	case rejectedTitle:
		r.Title++
	case rejectedPrice:
		r.Price++
	case rejectedDate:
		r.Date++
	case rejectedStale:
		r.Stale++
	case rejectedDuplicate:
		r.Duplicate++
	}
}

// ExtractResult は販売済み出品の抽出結果です
type ExtractResult struct {
	Sales      []*model.SaleRecord
	Rejections Rejections
}

// ParseSoldListings は検索結果ページのHTMLから、直近 timeframeDays 日分の販売済み出品を抽出します
// HTMLとして解釈できない場合のみエラーを返し、個々の出品の不備は除外するだけです
func ParseSoldListings(html string, timeframeDays int, now time.Time) (*ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return extractSoldListings(doc, timeframeDays, now), nil
}

// extractSoldListings はドキュメント順に出品を評価し、採用されたものを同じ順序で返します
func extractSoldListings(doc *goquery.Document, timeframeDays int, now time.Time) *ExtractResult {
	cutoff := cutoffDate(now, timeframeDays)
	seen := newSeenSales()
	result := &ExtractResult{Sales: []*model.SaleRecord{}}

	doc.Find(listingSelector).Each(func(_ int, s *goquery.Selection) {
		record, reason := evaluateListing(s, now, cutoff, seen)
		if reason != accepted {
			result.Rejections.add(reason)
			return
		}
		result.Sales = append(result.Sales, record)
	})

	return result
}

// evaluateListing は1件の出品を タイトル → 価格 → 販売日 → 期間 → 重複 の順に判定します
func evaluateListing(s *goquery.Selection, now, cutoff time.Time, seen seenSales) (*model.SaleRecord, rejectReason) {
	title := cleanTitle(firstText(s, titleSelectors))
	if title == "" || isPlaceholderTitle(title) {
		return nil, rejectedTitle
	}

	price, ok := parsePrice(firstText(s, priceSelectors))
	if !ok {
		return nil, rejectedPrice
	}

	dateSold, ok := parseSoldDate(soldDateCandidates(s), now)
	if !ok {
		return nil, rejectedDate
	}

	if !withinWindow(dateSold, cutoff) {
		return nil, rejectedStale
	}

	if !seen.markFirst(saleKey(title, price.Amount, dateSold)) {
		return nil, rejectedDuplicate
	}

	return &model.SaleRecord{
		Title:      title,
		Price:      price.Amount,
		Currency:   price.Currency,
		DateSold:   dateSold,
		ListingURL: firstAttr(s, linkSelectors, "href"),
	}, accepted
}

// cleanTitle はタイトルの空白を正規化し、先頭の "New Listing" バッジと末尾の読み上げ用テキストを取り除きます
func cleanTitle(raw string) string {
	title := normalizeText(raw)
	if n := len(newListingBadge); len(title) >= n && strings.EqualFold(title[:n], newListingBadge) {
		title = normalizeText(title[n:])
	}
	if n := len(opensInNewWindow); len(title) >= n && strings.EqualFold(title[len(title)-n:], opensInNewWindow) {
		title = normalizeText(title[:len(title)-n])
	}
	return title
}

func isPlaceholderTitle(title string) bool {
	_, ok := placeholderTitles[strings.ToLower(title)]
	return ok
}

// soldDateCandidates は販売日を探す候補テキストを優先度順に返します
// 最後の候補は出品要素全体のテキストです
func soldDateCandidates(s *goquery.Selection) []string {
	candidates := make([]string, 0, len(soldDateSelectors)+1)
	for _, sel := range soldDateSelectors {
		candidates = append(candidates, normalizeText(s.Find(sel).First().Text()))
	}
	return append(candidates, normalizeText(s.Text()))
}
