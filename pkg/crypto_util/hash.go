package crypto_util

import (
	"crypto/sha256"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// SHA256 computes the SHA-256 digest of the input.
func SHA256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// Fingerprint computes the hex-encoded Blake3 digest of the input. Used to
// identify a batch payload independently of nonce and gas, so a re-run over
// the same payout list can be detected before it reaches the wire.
func Fingerprint(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
