package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyCode は販売価格の通貨コードです
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyJPY CurrencyCode = "JPY"
	CurrencyCAD CurrencyCode = "CAD"
	CurrencyAUD CurrencyCode = "AUD"
)

// PriceInfo は価格文字列から抽出した金額と通貨です
// Amount は常に小数点以下2桁に丸められ、0より大きい値のみを保持します
type PriceInfo struct {
	Amount   decimal.Decimal
	Currency CurrencyCode
}

// SaleRecord は販売済み出品1件を表すドメインモデルです
// 外部サイト（eBay）のHTML構造を知らない、純粋なデータ構造を定義します
type SaleRecord struct {
	Title      string
	Price      decimal.Decimal
	Currency   CurrencyCode
	DateSold   time.Time // 販売日（時刻は常に0時）
	ListingURL string    // 出品ページのURL。取得できない場合は空文字
}

// SellerSales は出品者ごとの販売実績の取得結果です
type SellerSales struct {
	Seller        string
	TimeframeDays int
	Sales         []*SaleRecord
	Source        string // 取得経路（ebay-direct / ebay-proxy / ebay-headless）
}

// TotalFound は取得できた販売実績の件数を返します
func (s *SellerSales) TotalFound() int {
	return len(s.Sales)
}
