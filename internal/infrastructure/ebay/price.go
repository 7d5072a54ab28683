package ebay

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"jo3qma.com/listify/internal/domain/model"
)

// currencyMarker は価格文字列中の通貨表記と、その検出用パターンの組です
type currencyMarker struct {
	marker  string
	pattern *regexp.Regexp
}

// currencyMarkers は検出順に並んだ通貨表記です。先に一致したものを採用します
// "US$" より "USD" を、"$" 単体は最後に判定します
var currencyMarkers = func() []currencyMarker {
	markers := []string{"USD", "CAD", "AUD", "GBP", "EUR", "US$", "CA$", "AU$", "C$", "A$", "£", "€", "¥", "$"}
	out := make([]currencyMarker, 0, len(markers))
	for _, m := range markers {
		out = append(out, currencyMarker{
			marker:  m,
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m)),
		})
	}
	return out
}()

// currencyByMarker は通貨表記から通貨コードへの対応表です（読み取り専用）
var currencyByMarker = map[string]model.CurrencyCode{
	"USD": model.CurrencyUSD,
	"US$": model.CurrencyUSD,
	"$":   model.CurrencyUSD,
	"CAD": model.CurrencyCAD,
	"CA$": model.CurrencyCAD,
	"C$":  model.CurrencyCAD,
	"AUD": model.CurrencyAUD,
	"AU$": model.CurrencyAUD,
	"A$":  model.CurrencyAUD,
	"GBP": model.CurrencyGBP,
	"£":   model.CurrencyGBP,
	"EUR": model.CurrencyEUR,
	"€":   model.CurrencyEUR,
	"¥":   model.CurrencyJPY,
}

var (
	// nonNumericRegexp は数字・ピリオド・カンマ・マイナス以外の文字に一致します
	nonNumericRegexp = regexp.MustCompile(`[^\d.,-]`)
	// leadingNumberRegexp は先頭の数値部分を取り出します
	// "45.00-60.00" のような価格帯は下限の値になります
	leadingNumberRegexp = regexp.MustCompile(`^-?(?:\d+(?:\.\d*)?|\.\d+)`)
)

// detectCurrencyMarker は価格文字列から通貨表記を検出します。見つからない場合は "$" です
func detectCurrencyMarker(raw string) string {
	for _, cm := range currencyMarkers {
		if cm.pattern.MatchString(raw) {
			return cm.marker
		}
	}
	return "$"
}

// currencyFor は通貨表記を通貨コードに変換します。未知の表記はUSDとして扱います
func currencyFor(marker string) model.CurrencyCode {
	if code, ok := currencyByMarker[strings.ToUpper(marker)]; ok {
		return code
	}
	return model.CurrencyUSD
}

// parsePrice は "US $45.00" や "EUR 9,99" などの文字列から金額と通貨を抽出します
// 金額として解釈できない、または0以下の場合は false を返します
func parsePrice(raw string) (model.PriceInfo, bool) {
	raw = normalizeText(raw)
	if raw == "" {
		return model.PriceInfo{}, false
	}

	marker := detectCurrencyMarker(raw)

	numeric := nonNumericRegexp.ReplaceAllString(raw, "")
	if strings.Contains(numeric, ",") && !strings.Contains(numeric, ".") {
		numeric = strings.ReplaceAll(numeric, ",", ".")
	} else {
		numeric = strings.ReplaceAll(numeric, ",", "")
	}

	match := leadingNumberRegexp.FindString(numeric)
	if match == "" {
		return model.PriceInfo{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSuffix(match, "."))
	if err != nil {
		return model.PriceInfo{}, false
	}

	amount = amount.Round(2)
	if !amount.IsPositive() {
		return model.PriceInfo{}, false
	}

	return model.PriceInfo{
		Amount:   amount,
		Currency: currencyFor(marker),
	}, true
}
