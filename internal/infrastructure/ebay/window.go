package ebay

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTimeframeDays は期間が指定されない場合の集計日数です
const DefaultTimeframeDays = 7

// NormalizeTimeframe は集計日数を正規化します。0以下の場合は DefaultTimeframeDays を返します
func NormalizeTimeframe(days int) int {
	if days <= 0 {
		return DefaultTimeframeDays
	}
	return days
}

// startOfDay は t と同じタイムゾーンでの0時を返します
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// cutoffDate は保持対象となる最も古い販売日を返します
// windowDays が1なら当日分のみが対象になります
func cutoffDate(now time.Time, windowDays int) time.Time {
	return startOfDay(now).AddDate(0, 0, -(NormalizeTimeframe(windowDays) - 1))
}

// withinWindow は販売日が cutoff 以降かどうかを日単位で判定します
func withinWindow(dateSold, cutoff time.Time) bool {
	return !startOfDay(dateSold).Before(cutoff)
}

// seenSales は1回の抽出処理の中で出現済みの出品を記録します
// 抽出処理ごとに newSeenSales で作成し、呼び出し間で共有しません
type seenSales map[string]struct{}

func newSeenSales() seenSales {
	return make(seenSales)
}

// saleKey はタイトル・価格・販売日から重複判定用のキーを作成します
func saleKey(title string, price decimal.Decimal, dateSold time.Time) string {
	return title + "\x00" + price.StringFixed(2) + "\x00" + dateSold.Format(time.DateOnly)
}

// markFirst はキーが未出現なら記録して true を、出現済みなら false を返します
func (s seenSales) markFirst(key string) bool {
	if _, dup := s[key]; dup {
		return false
	}
	s[key] = struct{}{}
	return true
}
