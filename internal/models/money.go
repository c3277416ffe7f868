package models

import "github.com/shopspring/decimal"

// ValidAmount reports whether d is usable as a monetary amount: strictly
// positive with at most two fractional digits.
func ValidAmount(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	return d.Equal(d.Truncate(2))
}

// CommissionAmount computes amount * rate / 100 rounded to two decimal
// places, half away from zero.
func CommissionAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}
