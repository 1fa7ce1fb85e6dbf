// Package receipt holds the payment-receipt (comprobante) domain: the entity,
// its status state machine, code generation, and the integrity hash that
// protects issued receipts from tampering.
package receipt

import (
	"errors"
	"fmt"
	"time"

	"github.com/aputours/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Validation errors
var (
	ErrInvalidServiceType  = errors.New("invalid service type")
	ErrEmptyClientDocument = errors.New("client document cannot be empty")
	ErrNegativePersonCount = errors.New("person count cannot be negative")
	ErrNegativeAmount      = errors.New("monetary amounts cannot be negative")
	ErrEmptyRejectReason   = errors.New("rejection reason cannot be empty")
)

// Status defines the receipt lifecycle states
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusVerified  Status = "verified"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// allowedTransitions maps each status to the statuses reachable from it.
// Re-entering paid or verified is permitted so those operations stay
// idempotent. rejected and cancelled are terminal: a rejected receipt cannot
// be re-verified, only re-issued as a new receipt.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:  {StatusPaid: true, StatusVerified: true, StatusRejected: true},
	StatusPaid:     {StatusPaid: true, StatusVerified: true, StatusRejected: true},
	StatusVerified: {StatusVerified: true},
}

// CanTransitionTo reports whether a receipt in status s may move to next
func (s Status) CanTransitionTo(next Status) bool {
	return allowedTransitions[s][next]
}

// ErrInvalidTransition indicates a forbidden status change
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid receipt transition from %s to %s", e.From, e.To)
}

// Is implements the errors.Is interface for ErrInvalidTransition
func (e ErrInvalidTransition) Is(target error) bool {
	t, ok := target.(ErrInvalidTransition)
	if !ok {
		return false
	}
	if t.From == "" && t.To == "" {
		return true
	}
	return e.From == t.From && e.To == t.To
}

// Receipt is the issued proof-of-charge for a booking. Everything except the
// status and the verification audit fields is immutable after issuance; the
// integrity hash binds the codes, the client document, and the total so any
// later alteration is detectable.
type Receipt struct {
	ID               uuid.UUID          `json:"id" bson:"id"`
	ReceiptCode      string             `json:"receipt_code" bson:"receipt_code"`
	VerificationCode string             `json:"verification_code" bson:"verification_code"`
	BookingID        uuid.UUID          `json:"booking_id" bson:"booking_id"`
	UserID           string             `json:"user_id" bson:"user_id"`
	ServiceType      shared.ServiceType `json:"service_type" bson:"service_type"`
	ProviderID       string             `json:"provider_id,omitempty" bson:"provider_id,omitempty"`
	ProviderName     string             `json:"provider_name" bson:"provider_name"`

	// Client snapshot taken at issuance time, not a live profile reference
	ClientName     string `json:"client_name" bson:"client_name"`
	ClientEmail    string `json:"client_email" bson:"client_email"`
	ClientDocument string `json:"client_document" bson:"client_document"`
	ClientPhone    string `json:"client_phone" bson:"client_phone"`

	ServiceDescription string     `json:"service_description" bson:"service_description"`
	ServiceStartDate   time.Time  `json:"service_start_date" bson:"service_start_date"`
	ServiceEndDate     *time.Time `json:"service_end_date,omitempty" bson:"service_end_date,omitempty"`
	PersonCount        int        `json:"person_count" bson:"person_count"`

	Subtotal  float64 `json:"subtotal" bson:"subtotal"`
	TaxAmount float64 `json:"tax_amount" bson:"tax_amount"`
	Discount  float64 `json:"discount" bson:"discount"`
	Total     float64 `json:"total" bson:"total"`

	Status        Status `json:"status" bson:"status"`
	PaymentMethod string `json:"payment_method" bson:"payment_method"`

	PaidAt            *time.Time `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	VerifiedBy        string     `json:"verified_by,omitempty" bson:"verified_by,omitempty"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
	VerificationNotes string     `json:"verification_notes,omitempty" bson:"verification_notes,omitempty"`

	IntegrityHash string    `json:"integrity_hash" bson:"integrity_hash"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// DefaultTaxRate is applied to the subtotal when no explicit tax amount is
// supplied (Peruvian IGV, 18%).
const DefaultTaxRate = 0.18
