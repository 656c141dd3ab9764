package permissive

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp はRFC 2822形式として読めた日時か、読めなかった元のテキストを保持する。
// Validな日時のロケーションは常に固定オフセット（time.FixedZone）になる。
type Timestamp = Scalar[time.Time]

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// zoneOffsets はRFC 2822で名前が定義されているタイムゾーンのオフセット（秒）。
var zoneOffsets = map[string]int{
	"UT":  0,
	"GMT": 0,
	"Z":   0,
	"EST": -5 * 3600, "EDT": -4 * 3600,
	"CST": -6 * 3600, "CDT": -5 * 3600,
	"MST": -7 * 3600, "MDT": -6 * 3600,
	"PST": -8 * 3600, "PDT": -7 * 3600,
}

// DecodeTimestamp は "Mon, 10 Oct 2022 06:10:05 GMT" のようなRFC 2822形式の日時をデコードする。
// タイムゾーンデータベースは参照せず、数値オフセットとRFC 2822の名前付きゾーンのみを扱う。
func DecodeTimestamp(raw string) Timestamp {
	t, ok := parseRFC2822(raw)
	if !ok {
		return Fallback[time.Time](raw)
	}
	return Valid(t)
}

func parseRFC2822(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)

	weekday, hasWeekday := time.Weekday(0), false
	if before, after, found := strings.Cut(s, ","); found {
		wd, ok := parseWeekday(strings.TrimSpace(before))
		if !ok {
			return time.Time{}, false
		}
		weekday, hasWeekday = wd, true
		s = after
	}

	fields := strings.Fields(s)
	if len(fields) != 5 {
		return time.Time{}, false
	}

	day, ok := parseFixedDigits(fields[0], 1, 2)
	if !ok {
		return time.Time{}, false
	}
	month, ok := months[strings.ToLower(fields[1])]
	if !ok {
		return time.Time{}, false
	}
	year, ok := parseYear(fields[2])
	if !ok {
		return time.Time{}, false
	}
	hour, minute, second, ok := parseClock(fields[3])
	if !ok {
		return time.Time{}, false
	}
	offset, ok := parseZone(fields[4])
	if !ok {
		return time.Time{}, false
	}

	// うるう秒（:60）は日付の検証を59秒で行い、その後に次の秒へ正規化する
	leap := second == 60
	if leap {
		second = 59
	}
	t := time.Date(year, month, day, hour, minute, second, 0, time.FixedZone("", offset))
	if t.Day() != day || t.Month() != month {
		// 2月30日などの存在しない日付
		return time.Time{}, false
	}
	if hasWeekday && t.Weekday() != weekday {
		return time.Time{}, false
	}
	if leap {
		t = t.Add(time.Second)
	}
	return t, true
}

func parseWeekday(s string) (time.Weekday, bool) {
	lower := strings.ToLower(s)
	for abbr, wd := range weekdays {
		if lower == abbr || lower == strings.ToLower(wd.String()) {
			return wd, true
		}
	}
	return 0, false
}

// parseYear は2桁・3桁の旧形式の年も受け付ける（RFC 2822 4.3節）。
func parseYear(s string) (int, bool) {
	year, ok := parseFixedDigits(s, 2, 4)
	if !ok {
		return 0, false
	}
	switch len(s) {
	case 2:
		if year < 50 {
			return year + 2000, true
		}
		return year + 1900, true
	case 3:
		return year + 1900, true
	}
	return year, true
}

func parseClock(s string) (hour, minute, second int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, false
	}
	if hour, ok = parseFixedDigits(parts[0], 1, 2); !ok || hour > 23 {
		return 0, 0, 0, false
	}
	if minute, ok = parseFixedDigits(parts[1], 2, 2); !ok || minute > 59 {
		return 0, 0, 0, false
	}
	if len(parts) == 3 {
		if second, ok = parseFixedDigits(parts[2], 2, 2); !ok || second > 60 {
			return 0, 0, 0, false
		}
	}
	return hour, minute, second, true
}

func parseZone(s string) (int, bool) {
	if len(s) == 5 && (s[0] == '+' || s[0] == '-') {
		hh, ok1 := parseFixedDigits(s[1:3], 2, 2)
		mm, ok2 := parseFixedDigits(s[3:5], 2, 2)
		if !ok1 || !ok2 || mm > 59 {
			return 0, false
		}
		offset := hh*3600 + mm*60
		if s[0] == '-' {
			offset = -offset
		}
		return offset, true
	}

	upper := strings.ToUpper(s)
	if offset, ok := zoneOffsets[upper]; ok {
		return offset, true
	}
	// 1文字の軍用ゾーンは意味が曖昧なため +0000 として扱う（RFC 2822 4.3節）
	if len(upper) == 1 && upper[0] >= 'A' && upper[0] <= 'Z' && upper[0] != 'J' {
		return 0, true
	}
	return 0, false
}

func parseFixedDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen || !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
