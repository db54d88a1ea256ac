package domain

import (
	"encoding/json"
	"strings"
)

// MetadataStandard tags the on-chain metadata convention an asset was minted with.
type MetadataStandard string

const (
	MetadataStandardCIP25v1 MetadataStandard = "CIP25v1"
	MetadataStandardCIP25v2 MetadataStandard = "CIP25v2"
	MetadataStandardCIP68v1 MetadataStandard = "CIP68v1"
)

// IsVersioned reports whether attribute values are hex encoded with a leading
// version marker.
func (s MetadataStandard) IsVersioned() bool {
	return s == MetadataStandardCIP68v1
}

// HandlePolicyID is the policy under which $handle NFTs are minted.
const HandlePolicyID = "f0ff48bbb7bbe9d59a40f1ce90e9e9d0ff5002ec48f232b49ca0fb9a"

// Bech32 prefixes and the handle sigil used to classify wallet identifiers.
const (
	StakeKeyPrefix = "stake1"
	AddressPrefix  = "addr1"
	HandleSigil    = "$"
)

// HandleTokenID returns the token ID of the NFT backing a $handle.
func HandleTokenID(handle string) string {
	return HandlePolicyID + TextToHex(strings.TrimPrefix(handle, HandleSigil))
}

// RawAsset is an asset record as reported by the chain indexer.
type RawAsset struct {
	TokenID           string
	PolicyID          string
	Fingerprint       string
	AssetNameHex      string
	Quantity          string
	MetadataStandard  MetadataStandard
	OnchainMetadata   json.RawMessage
	OffchainMetadata  json.RawMessage
	MintTransactionID string
}

// OffchainInfo is the part of the registry payload embedded in an indexer asset
// record that the normalizers consume. Nil fields were absent or null.
type OffchainInfo struct {
	Name     *string `json:"name"`
	Ticker   *string `json:"ticker"`
	Decimals *int    `json:"decimals"`
	Logo     *string `json:"logo"`
}

// ParseOffchainInfo decodes the embedded registry payload. Anything undecodable
// yields an empty OffchainInfo.
func ParseOffchainInfo(raw json.RawMessage) OffchainInfo {
	var info OffchainInfo
	if len(raw) == 0 {
		return info
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return OffchainInfo{}
	}
	return info
}

// PolicyUnit is one asset unit under a policy with its current on-chain quantity.
type PolicyUnit struct {
	TokenID  string
	Quantity string
}

// AddressHolding is one address holding a quantity of an asset.
type AddressHolding struct {
	Address  string
	Quantity string
}
