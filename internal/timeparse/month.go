// Package timeparse extracts month/year information from the free-text
// time fields clients type into training requests ("T11/2024",
// "Tháng 3 2023", "cuối tháng 12/2025", ...). The date-range filter and
// the "soonest" sort both go through ParseMonth, so the two features can
// never disagree about what a string means.
package timeparse

import (
	"regexp"
	"strconv"
)

// Month is a calendar month resolved from free text.
type Month struct {
	Month int // 1..12
	Year  int
}

// Index maps the month onto a single monotonic axis so months can be
// compared and range-checked with plain integer arithmetic.
func (m Month) Index() int {
	return m.Year*12 + m.Month - 1
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	return m.Index() < other.Index()
}

// monthPattern accepts an optional "T"/"Tháng"/"thang" prefix, a 1-2 digit
// month, a separator out of { / space . , - } and a 4 digit year. The match
// may appear anywhere inside the string.
var monthPattern = regexp.MustCompile(`(?i)(?:tháng|thang|t)?\s*(\d{1,2})\s*[\s/.,-]\s*\b(\d{4})\b`)

// ParseMonth resolves a month/year from free text. The second return value
// is false when no well-formed month is present or the month number falls
// outside [1,12]. ParseMonth never panics on malformed input.
func ParseMonth(s string) (Month, bool) {
	if s == "" {
		return Month{}, false
	}

	match := monthPattern.FindStringSubmatch(s)
	if match == nil {
		return Month{}, false
	}

	month, err := strconv.Atoi(match[1])
	if err != nil || month < 1 || month > 12 {
		return Month{}, false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return Month{}, false
	}

	return Month{Month: month, Year: year}, true
}

// InRange reports whether the month parsed from s falls inside the
// inclusive range [from, to]. Either bound may be empty or unparsable, in
// which case that side of the range is open. A value that itself fails to
// parse is never inside a bounded range.
func InRange(s, from, to string) bool {
	fromMonth, hasFrom := ParseMonth(from)
	toMonth, hasTo := ParseMonth(to)
	if !hasFrom && !hasTo {
		return true
	}

	value, ok := ParseMonth(s)
	if !ok {
		return false
	}

	if hasFrom && value.Index() < fromMonth.Index() {
		return false
	}
	if hasTo && value.Index() > toMonth.Index() {
		return false
	}
	return true
}
