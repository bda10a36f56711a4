package uri

import "strings"

// Token metadata may reference assets through content-addressed schemes
// that browsers cannot fetch directly. Normalize rewrites those
// references to public HTTPS gateway URLs for display.

const (
	defaultIPFSGateway    = "https://ipfs.io/ipfs/"
	defaultArweaveGateway = "https://arweave.net/"
)

// Normalize returns a fetchable HTTPS URL for the given asset reference.
// Plain HTTP(S) URLs and empty strings pass through unchanged.
func Normalize(raw string) string {
	if cid, ok := strings.CutPrefix(raw, "ipfs://"); ok {
		return defaultIPFSGateway + cid
	}

	if txID, ok := strings.CutPrefix(raw, "ar://"); ok {
		return defaultArweaveGateway + txID
	}

	return raw
}
