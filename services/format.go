package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatMoney formats an amount with its currency code, thousands grouping
// and exactly 2 decimal places (e.g., "USD 1,234,567.89").
func FormatMoney(amount float64, currency string) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := applyThousandsGrouping(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	if currency != "" {
		result = currency + " " + result
	}
	return result
}

// applyThousandsGrouping inserts commas every 3 digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// formatQty returns a string representation of a quantity value. Whole
// numbers are formatted without decimals; fractional values get 2 decimals.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
