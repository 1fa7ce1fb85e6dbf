package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages booking persistence
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// GetByConfirmationCode returns (nil, nil) when no booking matches
	GetByConfirmationCode(ctx context.Context, code string) (*Booking, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Booking, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// ErrBookingNotFound indicates a missing booking
type ErrBookingNotFound struct {
	ID uuid.UUID
}

func (e ErrBookingNotFound) Error() string {
	return "booking not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrBookingNotFound
func (e ErrBookingNotFound) Is(target error) bool {
	t, ok := target.(ErrBookingNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}
