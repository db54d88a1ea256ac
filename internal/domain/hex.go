package domain

import (
	"encoding/hex"
	"strings"
)

// HexToText decodes a hex-encoded asset name into text. Invalid hex yields an empty
// string; invalid UTF-8 sequences are replaced rather than rejected.
func HexToText(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(b), "�")
}

// TextToHex hex-encodes the UTF-8 bytes of s.
func TextToHex(s string) string {
	return hex.EncodeToString([]byte(s))
}

// IsHex reports whether s is a non-empty, even-length string of hex digits.
func IsHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// AssetNameHex returns the hex asset name of a token ID, i.e. the token ID with its
// policy ID prefix removed.
func AssetNameHex(tokenID, policyID string) string {
	return strings.TrimPrefix(tokenID, policyID)
}

// PolicyIDLength is the length of a hex-encoded policy ID.
const PolicyIDLength = 56

// SplitTokenID splits a token ID into its policy ID and hex asset name. Token IDs
// shorter than a policy ID are returned whole as the policy ID.
func SplitTokenID(tokenID string) (policyID, assetNameHex string) {
	if len(tokenID) <= PolicyIDLength {
		return tokenID, ""
	}
	return tokenID[:PolicyIDLength], tokenID[PolicyIDLength:]
}
