package bundle

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// hashLength is the number of hex digits of the digest kept in tag ids.
const hashLength = 8

// ContentHash returns the first eight lowercase hex digits of the canonical
// (big-endian) xxHash128 digest of code.
func ContentHash(code string) string {
	sum := xxh3.HashString128(code).Bytes()
	return hex.EncodeToString(sum[:])[:hashLength]
}
