package address

import (
	"crypto/sha256"
	"encoding/hex"
)

// Record namespaces. A record address derives from its namespace tag plus the
// owning key, so lookups never need a separate index and addresses cannot
// collide across namespaces.
const (
	NamespaceTreasury       = "treasury"
	NamespaceArtistProfile  = "artist_profile"
	NamespaceMasterWork     = "master_work"
	NamespaceRoyaltySplit   = "royalty_split"
	NamespaceRevenueTracker = "revenue_tracker"
	NamespaceCollection     = "collection"
)

// Derive returns the deterministic address for (namespace, parts...).
// The same inputs always yield the same address.
func Derive(namespace string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(namespace))
	for _, part := range parts {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
