// Package cache implements the staged artifact store and the file-change
// aware parse cache. Every entry is a plain JSON file under a configured
// root so a corrupted or half-written entry can only ever cost a recompute,
// never block one.
package cache

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// hashLen is the number of hex characters kept from the digest. Sixteen is
// plenty for the cache sizes this tool sees.
const hashLen = 16

// Hash returns a short deterministic fingerprint of content. It never fails,
// including on empty input.
func Hash(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])[:hashLen]
}

// HashString is Hash over a string without an extra copy at call sites.
func HashString(content string) string {
	return Hash([]byte(content))
}
