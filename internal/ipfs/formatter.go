// Package ipfs turns IPFS references found in token metadata into canonical
// ipfs:// URIs and gateway URLs.
package ipfs

import (
	"strings"

	"github.com/badfoxmc/cardano-api/internal/domain"
)

// DefaultGateway is the public gateway used when none is configured.
const DefaultGateway = "https://ipfs.io"

// Formatter formats IPFS references against one gateway.
type Formatter struct {
	gateway string
}

// NewFormatter creates a Formatter for gateway, e.g. "https://ipfs.io".
func NewFormatter(gateway string) *Formatter {
	if gateway == "" {
		gateway = DefaultGateway
	}
	return &Formatter{gateway: strings.TrimRight(gateway, "/")}
}

// Format converts a reference such as "ipfs://Qm.../1.png", "ipfs://ipfs/Qm...",
// "/ipfs/Qm..." or a bare CID into {ipfs: "ipfs://<path>", url: "<gateway>/ipfs/<path>"}.
// Plain http references are returned as a URL only. Empty input yields an empty image.
func (f *Formatter) Format(ref string) domain.Image {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Image{}
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return domain.Image{URL: ref}
	}

	path := CIDPath(ref)
	if path == "" {
		return domain.Image{}
	}
	return domain.Image{
		IPFS: "ipfs://" + path,
		URL:  f.gateway + "/ipfs/" + path,
	}
}

// CIDPath strips every known IPFS scheme and path prefix from ref, leaving
// "<cid>[/<path>]".
func CIDPath(ref string) string {
	path := ref
	for {
		trimmed := strings.TrimPrefix(path, "ipfs://")
		trimmed = strings.TrimPrefix(trimmed, "/")
		trimmed = strings.TrimPrefix(trimmed, "ipfs/")
		if trimmed == path {
			return path
		}
		path = trimmed
	}
}
