package utils

import (
	"crypto/sha1"
	"encoding/hex"
)

// SHA1Hex returns the lowercase hex-encoded SHA-1 digest of s.
//
// The Capture server authenticates with a SHA-1 password digest in a query
// parameter. This is a protocol requirement, not an integrity mechanism;
// the connection itself is plain HTTP on the local network.
func SHA1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
