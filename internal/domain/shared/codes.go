package shared

import "math/rand"

// CodeAlphabet is the character set for human-readable codes. Easily confused
// characters (0/O, 1/I) are excluded so codes survive being read over the
// phone or copied from a printed receipt.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomCode returns n characters drawn uniformly from CodeAlphabet.
// Codes are usability identifiers, not secrets: forgery is prevented by the
// receipt integrity hash, so a non-cryptographic source is sufficient.
func RandomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = CodeAlphabet[rand.Intn(len(CodeAlphabet))]
	}
	return string(b)
}
