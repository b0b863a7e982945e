package util

import (
	"fmt"
	"strconv"
)

// Amounts travel as decimal strings at the API boundary ("13.50") and
// as integer cents everywhere else.

const maxAmountCent = 1_000_000_000_00 // sanity cap: one billion

// ParseAmount converts a decimal string to cents, rounding to two
// decimal places. Negative amounts are rejected.
func ParseAmount(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("amount must not be negative, got %s", s)
	}
	cent := int64(f*100 + 0.5)
	if cent > maxAmountCent {
		return 0, fmt.Errorf("amount too large, got %s", s)
	}
	return cent, nil
}

// FormatAmount renders cents as a decimal string with two places.
func FormatAmount(cent int64) string {
	return strconv.FormatFloat(float64(cent)/100.0, 'f', 2, 64)
}
