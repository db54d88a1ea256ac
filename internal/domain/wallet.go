package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// WalletIdentity is a resolved wallet: its stake key and the payment addresses it
// controls, in indexer enumeration order.
type WalletIdentity struct {
	StakeKey  string   `json:"stakeKey"`
	Addresses []string `json:"addresses"`
	PoolID    *string  `json:"poolId,omitempty"`
	Tokens    *[]Token `json:"tokens,omitempty"`
}

// Owner is one holder of a token.
type Owner struct {
	Address  string          `json:"address"`
	IsScript bool            `json:"isScript"`
	StakeKey string          `json:"stakeKey"`
	Quantity decimal.Decimal `json:"quantity"`
}

// MarshalJSON emits the quantity as a JSON number of arbitrary size.
func (o Owner) MarshalJSON() ([]byte, error) {
	type owner Owner
	return json.Marshal(struct {
		owner
		Quantity json.Number `json:"quantity"`
	}{owner: owner(o), Quantity: json.Number(o.Quantity.String())})
}

// TokenOwners is one page of a token's holders.
type TokenOwners struct {
	TokenID string  `json:"tokenId"`
	Page    int     `json:"page"`
	Owners  []Owner `json:"owners"`
}
