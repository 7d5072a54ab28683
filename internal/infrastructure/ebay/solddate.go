package ebay

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// futureDateTolerance を超えて未来になった販売日は、年をまたいだ表記とみなし1年戻します
// 例: 1月3日に "Sold Dec 30" を解釈すると当年の12月30日になってしまうため
const futureDateTolerance = 15 * 24 * time.Hour

// soldDatePattern は販売日表記の1パターンです
// build は正規表現のサブマッチから日付を組み立て、不正な日付なら false を返します
type soldDatePattern struct {
	re    *regexp.Regexp
	build func(m []string, now time.Time) (time.Time, bool)
}

// soldDatePatterns は優先度順に並んだ販売日表記です
var soldDatePatterns = []soldDatePattern{
	{
		// Sold Mar 2, 2024
		re: regexp.MustCompile(`(?i)Sold\s+([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})\b`),
		build: func(m []string, now time.Time) (time.Time, bool) {
			return buildDate(m[3], monthByName(m[1]), m[2], now.Location())
		},
	},
	{
		// Sold Mar 2 2024
		re: regexp.MustCompile(`(?i)Sold\s+([A-Za-z]+)\.?\s+(\d{1,2})\s+(\d{4})\b`),
		build: func(m []string, now time.Time) (time.Time, bool) {
			return buildDate(m[3], monthByName(m[1]), m[2], now.Location())
		},
	},
	{
		// Sold Mar 2（年は当年）
		re: regexp.MustCompile(`(?i)Sold\s+([A-Za-z]+)\.?\s+(\d{1,2})\b`),
		build: func(m []string, now time.Time) (time.Time, bool) {
			return buildDate(strconv.Itoa(now.Year()), monthByName(m[1]), m[2], now.Location())
		},
	},
	{
		// Sold 03/02/24, Sold 3/2/2024
		re: regexp.MustCompile(`(?i)Sold\s+(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\b`),
		build: func(m []string, now time.Time) (time.Time, bool) {
			month, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, false
			}
			return buildDate(m[3], time.Month(month), m[2], now.Location())
		},
	},
	{
		// Sold Mar-02-24
		re: regexp.MustCompile(`(?i)Sold\s+([A-Za-z]{3})-(\d{1,2})-(\d{4}|\d{2})\b`),
		build: func(m []string, now time.Time) (time.Time, bool) {
			return buildDate(m[3], monthByName(m[1]), m[2], now.Location())
		},
	},
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthByName は "Mar" や "March" などの月名を time.Month に変換します
// 解釈できない場合は0を返します
func monthByName(name string) time.Month {
	name = strings.ToLower(name)
	if name == "sept" {
		return time.September
	}
	if len(name) < 3 {
		return 0
	}
	for i, full := range monthNames {
		if strings.HasPrefix(full, name) {
			return time.Month(i + 1)
		}
	}
	return 0
}

// buildDate は年・月・日から0時の日付を作成します
// 2桁の年は2000年代とみなします。存在しない日付（2月30日など）は false を返します
func buildDate(yearStr string, month time.Month, dayStr string, loc *time.Location) (time.Time, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	if len(yearStr) == 2 {
		year += 2000
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// correctFutureDate は now より futureDateTolerance を超えて未来の日付を1年前に戻します
func correctFutureDate(t, now time.Time) time.Time {
	if t.Sub(now) > futureDateTolerance {
		return t.AddDate(-1, 0, 0)
	}
	return t
}

// parseSoldDate は候補テキストを優先度順に調べ、最初に解釈できた販売日を返します
// 各候補テキストについて soldDatePatterns を順に試し、どれにも一致しなければ次の候補に進みます
func parseSoldDate(candidates []string, now time.Time) (time.Time, bool) {
	for _, text := range candidates {
		if text == "" {
			continue
		}
		for _, p := range soldDatePatterns {
			for _, m := range p.re.FindAllStringSubmatch(text, -1) {
				if t, ok := p.build(m, now); ok {
					return correctFutureDate(t, now), true
				}
			}
		}
	}
	return time.Time{}, false
}
