package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$4.99", FormatCurrency(4.99, "CAD"))
	assert.Equal(t, "$0.00", FormatCurrency(0, "USD"))
	assert.Equal(t, "-$3.50", FormatCurrency(-3.5, "CAD"))
	assert.Equal(t, "€12.34", FormatCurrency(12.34, "eur"))
	assert.Equal(t, "CHF 9.00", FormatCurrency(9, "CHF"))
}

func TestParseCurrency(t *testing.T) {
	assert.InDelta(t, 4.99, ParseCurrency("$4.99"), 1e-9)
	assert.InDelta(t, -3.5, ParseCurrency("-$3.50"), 1e-9)
	assert.InDelta(t, 1234.56, ParseCurrency("CAD 1,234.56"), 1e-9)
	assert.Equal(t, 0.0, ParseCurrency("not a number"))
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 6.5, Percentage(50, 13), 1e-9)
	assert.Equal(t, 0.0, Percentage(100, 0))
	assert.InDelta(t, 13, Percentage(100, 13), 1e-9)
}

func TestRoundToTwo(t *testing.T) {
	assert.Equal(t, 3.33, RoundToTwo(10.0/3.0))
	assert.Equal(t, 17.19, RoundToTwo(17.190000001))
}
