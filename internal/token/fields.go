package token

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

const logoDataURIPrefix = "data:image/png;base64,"

var digitRuns = regexp.MustCompile(`\d+`)

// DecodeName decodes the on-chain name of a token. When no hex asset name is given
// it is derived from the token ID by stripping the policy ID.
func DecodeName(assetNameHex, tokenID, policyID string) string {
	if assetNameHex == "" {
		assetNameHex = domain.AssetNameHex(tokenID, policyID)
	}
	return domain.HexToText(assetNameHex)
}

// SerialNumber concatenates every run of digits in name and parses the result.
// Nil means no digits, a zero value, or a number too large to represent.
func SerialNumber(name string) *int64 {
	digits := strings.Join(digitRuns.FindAllString(name, -1), "")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

// Thumb picks the raw image reference of a token: the on-chain image (chunk arrays
// joined), else the off-chain logo as a PNG data URI, else "".
func Thumb(onchain, offchain *domain.Metadata) string {
	if thumb := domain.MetadataString(onchain, "image"); thumb != "" {
		return thumb
	}
	if logo := domain.MetadataString(offchain, "logo"); logo != "" {
		return logoDataURIPrefix + logo
	}
	return ""
}

// IsDirectImage reports whether thumb is an absolute reference that must not be
// treated as IPFS.
func IsDirectImage(thumb string) bool {
	return strings.HasPrefix(thumb, "data:") || strings.HasPrefix(thumb, "https:")
}

// Files decodes the on-chain files list. Entries that are not objects are skipped;
// chunked src arrays are joined.
func Files(onchain *domain.Metadata) []domain.File {
	files := []domain.File{}
	if onchain == nil {
		return files
	}
	raw, ok := onchain.Get("files")
	if !ok {
		return files
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return files
	}
	for _, entry := range entries {
		m := domain.ParseMetadata(entry)
		if m == nil {
			continue
		}
		files = append(files, domain.File{
			Src:       domain.MetadataString(m, "src"),
			MediaType: domain.MetadataString(m, "mediaType"),
			Name:      domain.MetadataString(m, "name"),
		})
	}
	return files
}

// attributeSource picks the richest metadata object: the on-chain attributes
// sub-object, the on-chain object itself, the off-chain object, or nothing.
func attributeSource(onchain, offchain *domain.Metadata) *domain.Metadata {
	if onchain != nil {
		if raw, ok := onchain.Get("attributes"); ok {
			if sub := domain.ParseMetadata(raw); sub != nil {
				return sub
			}
		}
		return onchain
	}
	return offchain
}

// ExtractAttributes builds the attribute mapping of a token, excluding reserved keys.
// Versioned metadata stores hex strings whose decoded text starts with a one-character
// marker; the marker is dropped. Values that cannot be decoded become "".
func ExtractAttributes(onchain, offchain *domain.Metadata, standard domain.MetadataStandard) *domain.Attributes {
	attrs := domain.NewAttributes()
	source := attributeSource(onchain, offchain)
	if source == nil {
		return attrs
	}

	for pair := source.Oldest(); pair != nil; pair = pair.Next() {
		if lo.Contains(domain.ReservedAttributeKeys, pair.Key) {
			continue
		}
		if standard.IsVersioned() {
			attrs.Set(pair.Key, domain.StringValue(decodeVersioned(pair.Value)))
			continue
		}
		attrs.Set(pair.Key, domain.AttributeValueFromJSON(pair.Value))
	}
	return attrs
}

// decodeVersioned hex-decodes a versioned attribute value and drops its leading marker.
func decodeVersioned(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	text := domain.HexToText(s)
	if text == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(text)
	return text[size:]
}
