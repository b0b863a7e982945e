package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateName checks a required name-like field (customer/product name,
// contact).
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("name too long, max 100 characters")
	}
	return nil
}

// ValidateDate checks a date string in YYYY-MM-DD form.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateQuantity checks a sale line quantity (must be positive, capped).
func ValidateQuantity(qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if qty > 1_000_000 {
		return fmt.Errorf("quantity too large, got %d", qty)
	}
	return nil
}
