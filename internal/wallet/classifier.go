// Package wallet resolves wallet identifiers into stake keys and address sets.
package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gouroboros/ledger/common"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// Kind is the recognized form of a wallet identifier.
type Kind int

const (
	KindInvalid Kind = iota
	KindStakeKey
	KindAddress
	KindHandle
	KindRawEncoded
)

func (k Kind) String() string {
	switch k {
	case KindStakeKey:
		return "stake_key"
	case KindAddress:
		return "address"
	case KindHandle:
		return "handle"
	case KindRawEncoded:
		return "raw_encoded"
	default:
		return "invalid"
	}
}

// Identifier is a classified wallet identifier. For KindRawEncoded, Decoded holds the
// bech32 address or stake key the raw bytes decoded to.
type Identifier struct {
	Kind    Kind
	Value   string
	Decoded string
}

// AddressDecoder decodes binary address bytes into their bech32 form.
type AddressDecoder func(b []byte) (string, error)

// Classifier sorts identifiers into their recognized forms.
type Classifier struct {
	decode AddressDecoder
}

// NewClassifier creates a Classifier. A nil decode uses DecodeAddressBytes.
func NewClassifier(decode AddressDecoder) *Classifier {
	if decode == nil {
		decode = DecodeAddressBytes
	}
	return &Classifier{decode: decode}
}

// Classify checks, in order: stake key prefix, address prefix, handle sigil, and
// finally whether the string is hex or raw bytes of a binary address that decodes to
// a stake key or address.
func (c *Classifier) Classify(s string) Identifier {
	switch {
	case strings.HasPrefix(s, domain.StakeKeyPrefix):
		return Identifier{Kind: KindStakeKey, Value: s}
	case strings.HasPrefix(s, domain.AddressPrefix):
		return Identifier{Kind: KindAddress, Value: s}
	case strings.HasPrefix(s, domain.HandleSigil):
		if len(s) == len(domain.HandleSigil) {
			return Identifier{Kind: KindInvalid, Value: s}
		}
		return Identifier{Kind: KindHandle, Value: s}
	case s == "":
		return Identifier{Kind: KindInvalid, Value: s}
	}

	raw := []byte(s)
	if domain.IsHex(s) {
		raw, _ = hex.DecodeString(s)
	}
	decoded, err := c.decode(raw)
	if err != nil {
		return Identifier{Kind: KindInvalid, Value: s}
	}
	if strings.HasPrefix(decoded, domain.StakeKeyPrefix) || strings.HasPrefix(decoded, domain.AddressPrefix) {
		return Identifier{Kind: KindRawEncoded, Value: s, Decoded: decoded}
	}
	return Identifier{Kind: KindInvalid, Value: s}
}

// DecodeAddressBytes decodes Cardano address bytes into bech32.
func DecodeAddressBytes(b []byte) (decoded string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding address bytes: %v", r)
		}
	}()

	addr, err := common.NewAddressFromBytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding address bytes: %w", err)
	}
	return addr.String(), nil
}
