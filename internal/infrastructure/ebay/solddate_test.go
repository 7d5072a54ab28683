package ebay

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseSoldDate_patterns(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		text string
		want time.Time
	}{
		{name: "month day comma year", text: "Sold Mar 2, 2023", want: date(2023, time.March, 2)},
		{name: "month day year", text: "Sold  Mar 2 2023", want: date(2023, time.March, 2)},
		{name: "month day current year", text: "Sold Mar 2", want: date(2024, time.March, 2)},
		{name: "full month name", text: "Sold February 28, 2024", want: date(2024, time.February, 28)},
		{name: "month with period", text: "Sold Feb. 29", want: date(2024, time.February, 29)},
		{name: "numeric two digit year", text: "Sold 02/28/24", want: date(2024, time.February, 28)},
		{name: "numeric four digit year", text: "Sold 2/3/2024", want: date(2024, time.February, 3)},
		{name: "abbreviated dashed", text: "Sold Mar-01-24", want: date(2024, time.March, 1)},
		{name: "case insensitive", text: "SOLD MAR 4", want: date(2024, time.March, 4)},
		{name: "surrounded by other text", text: "Item ended · Sold Mar 3, 2024 · Best offer accepted", want: date(2024, time.March, 3)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseSoldDate([]string{tc.text}, now)
			if !ok {
				t.Fatalf("parseSoldDate(%q) reported no date", tc.text)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("parseSoldDate(%q) got %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseSoldDate_noDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	for _, text := range []string{"", "Ended Mar 2", "Sold Feb 30", "Sold 13/01/24", "Sold Foo 3", "Sold recently"} {
		if got, ok := parseSoldDate([]string{text}, now); ok {
			t.Errorf("parseSoldDate(%q) = %v, want no date", text, got)
		}
	}
}

func TestParseSoldDate_fragmentPriority(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	// 先に並んだ候補テキストで日付が取れた場合、後ろの候補はより強いパターンでも使わない
	got, ok := parseSoldDate([]string{"", "Sold 03/01/24", "Sold Mar 2, 2024"}, now)
	if !ok {
		t.Fatalf("expected a date")
	}
	if want := date(2024, time.March, 1); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// 同じ候補テキスト内ではパターンの優先度順
	got, ok = parseSoldDate([]string{"Sold 03/01/24 Sold Mar 2, 2024"}, now)
	if !ok {
		t.Fatalf("expected a date")
	}
	if want := date(2024, time.March, 2); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// 最初の候補が解釈できなければ次の候補へ進む
	got, ok = parseSoldDate([]string{"Sold Feb 30", "Sold Feb 27"}, now)
	if !ok {
		t.Fatalf("expected a date")
	}
	if want := date(2024, time.February, 27); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseSoldDate_futureDateCorrection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		text string
		want time.Time
	}{
		{
			name: "year boundary",
			now:  time.Date(2025, time.January, 3, 12, 0, 0, 0, time.UTC),
			text: "Sold Dec 30",
			want: date(2024, time.December, 30),
		},
		{
			name: "within tolerance is kept",
			now:  time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
			text: "Sold Mar 20",
			want: date(2024, time.March, 20),
		},
		{
			name: "beyond tolerance moves back one year",
			now:  time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
			text: "Sold Mar 21",
			want: date(2023, time.March, 21),
		},
		{
			name: "explicit year in the future",
			now:  time.Date(2025, time.January, 3, 12, 0, 0, 0, time.UTC),
			text: "Sold Dec 30, 2025",
			want: date(2024, time.December, 30),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseSoldDate([]string{tc.text}, tc.now)
			if !ok {
				t.Fatalf("parseSoldDate(%q) reported no date", tc.text)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMonthByName(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Month{
		"Jan":       time.January,
		"sept":      time.September,
		"SEP":       time.September,
		"December":  time.December,
		"ma":        0,
		"Marzo":     0,
		"Wednesday": 0,
	}
	for name, want := range cases {
		if got := monthByName(name); got != want {
			t.Errorf("monthByName(%q) = %v, want %v", name, got, want)
		}
	}
}
