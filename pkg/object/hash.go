package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// HashLen is the length of a hex-encoded Hash.
const HashLen = 40

// rawHashLen is the length of a binary SHA-1 digest as it appears inside
// tree objects.
const rawHashLen = 20

// HashObject computes the SHA-1 of the envelope "type len\0content",
// exactly as Git addresses loose objects.
func HashObject(objType ObjectType, data []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(data))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// Valid reports whether h looks like a well-formed object address:
// 40 lowercase hex characters.
func (h Hash) Valid() bool {
	if len(h) != HashLen {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Short returns the 7-character abbreviation used in labels and logs.
func (h Hash) Short() string {
	if len(h) < 7 {
		return string(h)
	}
	return string(h[:7])
}
