package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// FormatMoney renders amount as dollars with exactly two decimals.
// Ties at the cent boundary round away from zero.
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("$%.2f", amount)
	}
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// Round2 rounds value to the nearest cent, ties away from zero.
// The float is read in its shortest decimal form, so 2.005 rounds to 2.01.
func Round2(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}
