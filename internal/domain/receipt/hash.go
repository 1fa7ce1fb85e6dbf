package receipt

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// integrityHashLen is the stored hash length in hex characters (128 bits of
// the SHA-256 digest, truncated for storage economy).
const integrityHashLen = 32

// ComputeIntegrityHash derives the tamper-detection fingerprint for a receipt.
// It binds the two codes, the client document, and the total under an
// application-wide secret; recomputing it at verification time and comparing
// against the stored value detects any post-issuance alteration.
// Deterministic: identical inputs always yield the identical hash.
func ComputeIntegrityHash(receiptCode, verificationCode, clientDocument string, total float64, secret string) string {
	payload := strings.Join([]string{receiptCode, verificationCode, clientDocument, formatAmount(total)}, "|")
	sum := sha256.Sum256([]byte(payload + secret))
	return hex.EncodeToString(sum[:])[:integrityHashLen]
}

// VerifyIntegrity recomputes the hash from the receipt's own stored fields
// and compares it against the persisted one
func (r *Receipt) VerifyIntegrity(secret string) bool {
	return ComputeIntegrityHash(r.ReceiptCode, r.VerificationCode, r.ClientDocument, r.Total, secret) == r.IntegrityHash
}

// formatAmount renders a total the shortest way that round-trips (849.6, not
// 849.60), keeping the hash input stable across re-serialization.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
