package utils

import (
	"fmt"
	"strconv"
	"strings"
)

var currencySymbols = map[string]string{
	"CAD": "$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
}

// FormatCurrency renders an amount with the currency's symbol, two decimals.
// Negative amounts keep the sign in front of the symbol: -$4.99.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// ParseCurrency extracts the numeric amount from a formatted string, ignoring
// symbols and separators. Unparseable input yields 0.
func ParseCurrency(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return parsed
}

// Percentage returns percentage% of amount, e.g. Percentage(50, 13) = 6.5.
func Percentage(amount, percentage float64) float64 {
	return amount * percentage / 100
}
