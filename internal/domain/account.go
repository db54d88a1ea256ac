package domain

// AddressInfo is the indexer's view of a payment address.
type AddressInfo struct {
	Address  string
	Type     string
	IsScript bool
	StakeKey string
}

// AccountInfo is the indexer's view of a stake account.
type AccountInfo struct {
	StakeKey string
	Active   bool
	PoolID   string
}

// PoolInfo is the registered metadata of a stake pool.
type PoolInfo struct {
	PoolID string
	Ticker string
	Name   string
}

// TransactionInfo locates a transaction on chain.
type TransactionInfo struct {
	Hash        string
	Block       string
	BlockHeight int64
}
