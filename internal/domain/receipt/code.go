package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/aputours/backend/internal/domain/shared"
)

const (
	receiptCodePrefix      = "APU"
	verificationCodePrefix = "VER"

	receiptCodeRandomLen      = 4
	verificationCodeRandomLen = 7
)

// serviceTags encodes the service type as a single letter inside the receipt
// code (D for tours, after "day trip", since T is taken by transport).
var serviceTags = map[shared.ServiceType]string{
	shared.ServiceTypeLodging:    "H",
	shared.ServiceTypeGastronomy: "G",
	shared.ServiceTypeTransport:  "T",
	shared.ServiceTypeTour:       "D",
	shared.ServiceTypePackage:    "P",
}

// NewReceiptCode builds a 12-character receipt code:
// APU + service tag + MMDD + 4 random alphabet characters.
// Uniqueness is probabilistic; the store rejects collisions at persistence
// time and the caller retries with fresh codes.
func NewReceiptCode(serviceType shared.ServiceType, now time.Time) (string, error) {
	tag, ok := serviceTags[serviceType]
	if !ok {
		return "", ErrInvalidServiceType
	}
	return fmt.Sprintf("%s%s%s%s", receiptCodePrefix, tag, now.Format("0102"), shared.RandomCode(receiptCodeRandomLen)), nil
}

// NewVerificationCode builds a 10-character verification code: VER + 7 random
// alphabet characters. This is the value handed to the verifying party.
func NewVerificationCode() string {
	return verificationCodePrefix + shared.RandomCode(verificationCodeRandomLen)
}

// NormalizeVerificationCode prepares user input for lookup: whitespace and
// hyphens are stripped and the result uppercased, so "ver-abc 1234" and
// "VERABC1234" resolve to the same receipt.
func NormalizeVerificationCode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}
