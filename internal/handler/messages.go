package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// GetSellerSalesRequest は販売実績取得のリクエストです
type GetSellerSalesRequest struct {
	Seller        string        `json:"seller"`
	TimeframeDays timeframeDays `json:"timeframeDays"`
}

// GetSellerSalesResponse は販売実績取得のレスポンスです
type GetSellerSalesResponse struct {
	Seller        string `json:"seller"`
	TimeframeDays int    `json:"timeframeDays"`
	TotalFound    int    `json:"totalFound"`
	Sales         []Sale `json:"sales"`
	Source        string `json:"source"`
}

// Sale は販売済み出品1件のレスポンス表現です
type Sale struct {
	Title      string      `json:"title"`
	Price      json.Number `json:"price"` // 小数点以下2桁の数値
	Currency   string      `json:"currency"`
	DateSold   string      `json:"dateSold"` // YYYY-MM-DD
	ListingURL *string     `json:"listingUrl"`
}

// timeframeDays は数値・数値文字列のどちらでも受け付ける集計日数です
// 解釈できない値は0（未指定）として扱い、ユースケース側で既定値に置き換えます
type timeframeDays int

func (d *timeframeDays) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}

	raw := strings.Trim(string(data), `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		*d = 0
		return nil
	}
	*d = timeframeDays(int(f))
	return nil
}
