package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(decimal.RequireFromString("1000")))
	assert.True(t, ValidAmount(decimal.RequireFromString("0.01")))
	assert.True(t, ValidAmount(decimal.RequireFromString("99.99")))

	assert.False(t, ValidAmount(decimal.Zero))
	assert.False(t, ValidAmount(decimal.RequireFromString("-5")))
	assert.False(t, ValidAmount(decimal.RequireFromString("1.001")))
	assert.False(t, ValidAmount(decimal.RequireFromString("0.005")))
}

func TestCommissionAmount(t *testing.T) {
	cases := []struct {
		amount string
		rate   string
		want   string
	}{
		{"1000", "15", "150"},
		{"1000", "12.5", "125"},
		{"999.99", "15", "150"},       // 149.9985 rounds half-up
		{"1", "15", "0.15"},
		{"0.10", "15", "0.02"},        // 0.015 rounds half-up to 0.02
		{"1000", "0", "0"},
	}

	for _, tc := range cases {
		got := CommissionAmount(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.rate))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"commission of %s at %s%%: got %s, want %s", tc.amount, tc.rate, got, tc.want)
	}
}
