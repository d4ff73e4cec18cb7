// Package format holds the presentational formatting helpers used by the
// pages: currency, dates, relative times, file sizes. All functions are pure.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale selects the display language. Anything other than "ja" renders as
// English.
const (
	LocaleEN = "en"
	LocaleJA = "ja"
)

func tag(locale string) language.Tag {
	if locale == LocaleJA {
		return language.Japanese
	}
	return language.AmericanEnglish
}

// Currency renders a JPY amount with digit grouping and no fraction digits.
func Currency(amount int64, locale string) string {
	p := message.NewPrinter(tag(locale))
	return p.Sprintf("¥%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// DateStyle selects between the compact and the verbose date rendering.
type DateStyle int

const (
	DateShort DateStyle = iota
	DateLong
)

// Date renders a timestamp for display. The long style includes the time of
// day.
func Date(t time.Time, locale string, style DateStyle) string {
	if locale == LocaleJA {
		if style == DateLong {
			return t.Format("2006年1月2日 15:04")
		}
		return t.Format("2006/01/02")
	}
	if style == DateLong {
		return t.Format("January 2, 2006, 3:04 PM")
	}
	return t.Format("Jan 2, 2006")
}

// RelativeTime renders how long ago t was, relative to now ("2 days ago",
// "3日前"). Months count as 30 days, years as 12 months.
func RelativeTime(t, now time.Time, locale string) string {
	seconds := int64(now.Sub(t).Seconds())
	if seconds < 0 {
		seconds = 0
	}

	type unit struct {
		limit int64
		div   int64
		en    string
		ja    string
	}
	units := []unit{
		{60, 1, "second", "秒前"},
		{60 * 60, 60, "minute", "分前"},
		{24 * 60 * 60, 60 * 60, "hour", "時間前"},
		{30 * 24 * 60 * 60, 24 * 60 * 60, "day", "日前"},
		{365 * 24 * 60 * 60, 30 * 24 * 60 * 60, "month", "か月前"},
	}

	for _, u := range units {
		if seconds < u.limit {
			n := seconds / u.div
			return relative(n, u.en, u.ja, locale)
		}
	}
	years := seconds / (12 * 30 * 24 * 60 * 60)
	return relative(years, "year", "年前", locale)
}

func relative(n int64, en, ja, locale string) string {
	if locale == LocaleJA {
		return fmt.Sprintf("%d%s", n, ja)
	}
	if n == 1 {
		return fmt.Sprintf("1 %s ago", en)
	}
	return fmt.Sprintf("%d %ss ago", n, en)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FileSize renders a byte count with two decimals: "0 Bytes", "1.00 KB",
// "1.00 MB". Bytes themselves stay whole numbers.
func FileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	if i == 0 {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/math.Pow(1024, float64(i)), sizeUnits[i])
}

// Truncate shortens s to at most n runes, appending an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
