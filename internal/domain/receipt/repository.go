package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository manages receipt persistence against the document store.
// Status updates are plain read-modify-write: the store serializes individual
// document writes but no conditional update is used, so two concurrent
// transitions on the same receipt resolve last-writer-wins.
type Repository interface {
	// Create persists a new receipt. Returns ErrDuplicateCode if another
	// receipt already holds the same receipt or verification code.
	Create(ctx context.Context, r *Receipt) error

	// GetByID returns ErrReceiptNotFound when no receipt matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// GetByVerificationCode returns (nil, nil) when no receipt matches;
	// a verification miss is an expected outcome, not a failure.
	GetByVerificationCode(ctx context.Context, code string) (*Receipt, error)

	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Receipt, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]*Receipt, error)
	CountByProvider(ctx context.Context, providerID string) (int64, error)

	// MarkPaid sets status=paid and the payment timestamp.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error

	// SetVerification sets the status (verified or rejected) together with
	// the audit fields. Monetary fields and the integrity hash are never
	// touched by any update.
	SetVerification(ctx context.Context, id uuid.UUID, status Status, verifiedBy string, verifiedAt time.Time, notes string) error
}

// ErrReceiptNotFound indicates a missing receipt
type ErrReceiptNotFound struct {
	ID uuid.UUID
}

func (e ErrReceiptNotFound) Error() string {
	return "receipt not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrReceiptNotFound
func (e ErrReceiptNotFound) Is(target error) bool {
	t, ok := target.(ErrReceiptNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}

// ErrDuplicateCode indicates a receipt or verification code collision
type ErrDuplicateCode struct {
	Code string
}

func (e ErrDuplicateCode) Error() string {
	return "receipt code already in use: " + e.Code
}

// Is implements the errors.Is interface for ErrDuplicateCode
func (e ErrDuplicateCode) Is(target error) bool {
	t, ok := target.(ErrDuplicateCode)
	if !ok {
		return false
	}
	if t.Code == "" {
		return true
	}
	return e.Code == t.Code
}
