package blockfrost

import "encoding/json"

type assetResponse struct {
	Asset                   string          `json:"asset"`
	PolicyID                string          `json:"policy_id"`
	AssetName               *string         `json:"asset_name"`
	Fingerprint             string          `json:"fingerprint"`
	Quantity                string          `json:"quantity"`
	InitialMintTxHash       string          `json:"initial_mint_tx_hash"`
	OnchainMetadataStandard *string         `json:"onchain_metadata_standard"`
	OnchainMetadata         json.RawMessage `json:"onchain_metadata"`
	Metadata                json.RawMessage `json:"metadata"`
}

type unitQuantity struct {
	Asset    string `json:"asset"`
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
}

type addressResponse struct {
	Address      string  `json:"address"`
	StakeAddress *string `json:"stake_address"`
	Type         string  `json:"type"`
	Script       bool    `json:"script"`
}

type accountResponse struct {
	StakeAddress string  `json:"stake_address"`
	Active       bool    `json:"active"`
	PoolID       *string `json:"pool_id"`
}

type addressEntry struct {
	Address string `json:"address"`
}

type addressQuantity struct {
	Address  string `json:"address"`
	Quantity string `json:"quantity"`
}

type poolMetadataResponse struct {
	PoolID string  `json:"pool_id"`
	Ticker *string `json:"ticker"`
	Name   *string `json:"name"`
}

type txResponse struct {
	Hash        string `json:"hash"`
	Block       string `json:"block"`
	BlockHeight int64  `json:"block_height"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
