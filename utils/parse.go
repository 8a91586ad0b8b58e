package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// ParseID parses a positive numeric id.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// OptionalString returns nil for blank input.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalDecimal returns nil for blank input.
func OptionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Deref returns the pointed value or the empty string.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatDate trims a backend timestamp down to its date part.
func FormatDate(s string) string {
	if len(s) >= len(DateLayout) {
		if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return s[:len(DateLayout)]
		}
	}
	return s
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "S/ " + d.StringFixed(2)
}
