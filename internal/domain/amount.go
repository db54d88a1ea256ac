package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// TokenAmount is an on-chain integer quantity together with its display scaling.
type TokenAmount struct {
	OnChain  decimal.Decimal
	Decimals int
	Display  decimal.Decimal
}

// NewTokenAmount builds an amount whose Display is exactly onChain / 10^decimals.
// Negative decimals are treated as zero.
func NewTokenAmount(onChain decimal.Decimal, decimals int) TokenAmount {
	if decimals < 0 {
		decimals = 0
	}
	return TokenAmount{
		OnChain:  onChain,
		Decimals: decimals,
		Display:  onChain.Shift(-int32(decimals)),
	}
}

// ParseQuantity parses an upstream integer quantity string. Empty or invalid input
// yields zero; fractional input is truncated.
func ParseQuantity(s string) decimal.Decimal {
	return SafeParse(s).Truncate(0)
}

// IsFungible reports whether a quantity counts as fungible. A quantity of exactly
// one is always treated as an NFT.
func IsFungible(quantity decimal.Decimal) bool {
	return quantity.GreaterThan(decimal.NewFromInt(1))
}

type tokenAmountJSON struct {
	OnChain  json.Number `json:"onChain"`
	Decimals int         `json:"decimals"`
	Display  json.Number `json:"display"`
}

// MarshalJSON emits amounts as JSON numbers rather than decimal strings.
func (a TokenAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenAmountJSON{
		OnChain:  json.Number(a.OnChain.String()),
		Decimals: a.Decimals,
		Display:  json.Number(a.Display.String()),
	})
}

func (a *TokenAmount) UnmarshalJSON(data []byte) error {
	var raw tokenAmountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	onChain, err := decimal.NewFromString(raw.OnChain.String())
	if err != nil {
		return fmt.Errorf("parsing onChain amount: %w", err)
	}
	*a = NewTokenAmount(onChain, raw.Decimals)
	return nil
}
