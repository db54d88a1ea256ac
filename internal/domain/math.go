package domain

import (
	"github.com/shopspring/decimal"
)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Pow10 returns 10^n as a decimal. Negative n is treated as zero.
func Pow10(n int) decimal.Decimal {
	if n < 0 {
		n = 0
	}
	return decimal.New(1, int32(n))
}
