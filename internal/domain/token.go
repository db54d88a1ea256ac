package domain

// TokenName holds the decoded on-chain name, registry ticker, and metadata display name.
type TokenName struct {
	OnChain string `json:"onChain"`
	Ticker  string `json:"ticker"`
	Display string `json:"display"`
}

// Token is the lightweight canonical token record.
type Token struct {
	TokenID     string      `json:"tokenId"`
	IsFungible  bool        `json:"isFungible"`
	TokenAmount TokenAmount `json:"tokenAmount"`
	TokenName   *TokenName  `json:"tokenName,omitempty"`
}

// Image is a token image reference. Direct references (data: or https:) only fill URL.
type Image struct {
	IPFS string `json:"ipfs"`
	URL  string `json:"url"`
}

// File is one entry of a token's metadata file list.
type File struct {
	Src       string `json:"src"`
	MediaType string `json:"mediaType"`
	Name      string `json:"name"`
}

// PopulatedToken is a Token with its full metadata resolved.
type PopulatedToken struct {
	Token
	Fingerprint       string      `json:"fingerprint"`
	PolicyID          string      `json:"policyId"`
	SerialNumber      *int64      `json:"serialNumber,omitempty"`
	MintTransactionID string      `json:"mintTransactionId"`
	MintBlockHeight   *int64      `json:"mintBlockHeight,omitempty"`
	Image             Image       `json:"image"`
	Files             []File      `json:"files"`
	Attributes        *Attributes `json:"attributes"`
}

// RankedToken is a Token with an optional rarity rank. A non-nil zero rank means the
// rank provider had no entry for the token.
type RankedToken struct {
	Token
	RarityRank *int `json:"rarityRank,omitempty"`
}

// Policy is the set of tokens minted under one policy ID.
type Policy struct {
	PolicyID string        `json:"policyId"`
	Tokens   []RankedToken `json:"tokens"`
}

// ReservedAttributeKeys are metadata keys that never become attributes.
var ReservedAttributeKeys = []string{
	"name", "project", "collection", "description", "image", "mediaType", "files",
	"decimals", "ticker", "url", "logo",
}
