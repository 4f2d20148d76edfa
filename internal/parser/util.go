package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Date token patterns for the statement layout: month abbreviation plus
// one-or-two digit day, no year. The upstream text extractor sometimes wraps
// the token across two lines, so the bare month and bare day are matched
// separately too.
var (
	// "Jun 15" on a single line
	fullDatePattern = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}$`)
	// "Jun" alone (day expected on the following line)
	bareMonthPattern = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)$`)
	// "15" alone
	bareDayPattern = regexp.MustCompile(`^\d{1,2}$`)
	// bare numeric amount token, e.g. "1,234.56" or "89.00"
	bareNumberPattern = regexp.MustCompile(`^([\d,]+\.?\d*)$`)
)

// parseAmount converts a string like "1,234.56" to a decimal value.
// Thousands separators are stripped; the decimal point is always ".".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

// isFullDate reports whether the line is a complete date token ("Jun 15").
func isFullDate(line string) bool {
	return fullDatePattern.MatchString(line)
}

// isBareMonth reports whether the line is a month abbreviation alone.
func isBareMonth(line string) bool {
	return bareMonthPattern.MatchString(line)
}

// isBareDay reports whether the line is a one-or-two digit day alone.
func isBareDay(line string) bool {
	return bareDayPattern.MatchString(line)
}

// isDigits reports whether the string is non-empty and all decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
