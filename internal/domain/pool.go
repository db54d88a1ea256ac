package domain

import "encoding/json"

// Pool is a stake pool with its optional delegator stake keys.
type Pool struct {
	PoolID     string   `json:"poolId"`
	Ticker     string   `json:"ticker"`
	Delegators []string `json:"delegators,omitempty"`
}

// Transaction locates a transaction on chain.
type Transaction struct {
	TransactionID string          `json:"transactionId"`
	Block         string          `json:"block"`
	BlockHeight   int64           `json:"blockHeight"`
	UTxOs         json.RawMessage `json:"utxos,omitempty"`
}
