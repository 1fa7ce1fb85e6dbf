// Package service holds the application services behind the HTTP handlers:
// receipt issuance/verification and booking management.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aputours/backend/internal/domain/booking"
	"github.com/aputours/backend/internal/domain/receipt"
	"github.com/aputours/backend/internal/domain/shared"
)

// ErrBookingNotConfirmed indicates an attempt to issue a receipt for a
// booking that has not been confirmed yet (or was cancelled).
var ErrBookingNotConfirmed = errors.New("booking must be confirmed before a receipt can be issued")

// CreateReceiptInput carries everything needed to issue a receipt. TaxAmount
// is optional; when nil the default rate is applied to the subtotal.
type CreateReceiptInput struct {
	BookingID          uuid.UUID
	UserID             string
	ServiceType        shared.ServiceType
	ProviderID         string
	ProviderName       string
	ClientName         string
	ClientEmail        string
	ClientDocument     string
	ClientPhone        string
	ServiceDescription string
	ServiceStartDate   time.Time
	ServiceEndDate     *time.Time
	PersonCount        int
	Subtotal           float64
	TaxAmount          *float64
	Discount           float64
	PaymentMethod      string
	CorrelationID      string
}

// IssueForBookingInput carries the receipt fields that cannot be derived from
// the booking itself. ServiceDescription defaults to the destination name.
type IssueForBookingInput struct {
	ProviderID         string
	ProviderName       string
	ServiceDescription string
	TaxAmount          *float64
	Discount           float64
	PaymentMethod      string
	CorrelationID      string
}

// VerificationResult is the outcome of checking a verification code. A miss
// or an invalid status is a result, not an error; Receipt is included even on
// an integrity mismatch so the suspect document can be audited.
type VerificationResult struct {
	Valid   bool             `json:"valid"`
	Message string           `json:"message"`
	Receipt *receipt.Receipt `json:"receipt,omitempty"`
}

// CreateBookingInput carries the fields needed to create a booking. The total
// price and the confirmation code are derived, never supplied.
type CreateBookingInput struct {
	UserID          string
	ServiceType     shared.ServiceType
	DestinationID   string
	DestinationName string
	StartDate       time.Time
	EndDate         time.Time
	Adults          int
	Children        int
	UnitPrice       float64
	FullName        string
	Email           string
	Phone           string
	Document        string
	SpecialRequests string
}

// ReceiptService defines the interface for receipt operations
type ReceiptService interface {
	// CreateReceipt issues a new receipt: generates codes, applies tax and
	// discount defaults, computes the integrity hash, and persists with a
	// bounded retry on duplicate codes
	CreateReceipt(ctx context.Context, in *CreateReceiptInput) (*receipt.Receipt, error)

	// IssueForBooking maps a confirmed booking onto receipt input and issues
	// the receipt. Returns ErrBookingNotConfirmed for non-confirmed bookings.
	IssueForBooking(ctx context.Context, bookingID uuid.UUID, in *IssueForBookingInput) (*receipt.Receipt, error)

	// GetReceiptByID retrieves a receipt by its ID
	// Returns receipt.ErrReceiptNotFound if the receipt doesn't exist
	GetReceiptByID(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error)

	// ListReceiptsByUser retrieves a paginated list of a user's receipts,
	// newest first, plus the total count
	ListReceiptsByUser(ctx context.Context, userID string, page, perPage int) ([]*receipt.Receipt, int64, error)

	// ListReceiptsByProvider retrieves a paginated list of a provider's
	// receipts, newest first, plus the total count
	ListReceiptsByProvider(ctx context.Context, providerID string, page, perPage int) ([]*receipt.Receipt, int64, error)

	// Verify checks a verification code: lookup, integrity hash comparison,
	// and status gating. Read-only and idempotent.
	Verify(ctx context.Context, verificationCode string) (*VerificationResult, error)

	// MarkPaid transitions a receipt to paid
	MarkPaid(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error)

	// MarkVerified transitions a receipt to verified, recording who verified
	// it and any notes
	MarkVerified(ctx context.Context, id uuid.UUID, verifiedBy, notes string) (*receipt.Receipt, error)

	// Reject transitions a receipt to rejected; the reason is mandatory and is
	// stored as the verification notes
	Reject(ctx context.Context, id uuid.UUID, verifiedBy, reason string) (*receipt.Receipt, error)
}

// BookingService defines the interface for booking operations
type BookingService interface {
	// CreateBooking validates and prices a new booking
	CreateBooking(ctx context.Context, in *CreateBookingInput) (*booking.Booking, error)

	// GetBookingByID retrieves a booking by its ID
	// Returns booking.ErrBookingNotFound if the booking doesn't exist
	GetBookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

	// GetBookingByConfirmationCode retrieves a booking by its confirmation
	// code; returns (nil, nil) when no booking matches
	GetBookingByConfirmationCode(ctx context.Context, code string) (*booking.Booking, error)

	// ListBookingsByUser retrieves a paginated list of a user's bookings,
	// newest first, plus the total count
	ListBookingsByUser(ctx context.Context, userID string, page, perPage int) ([]*booking.Booking, int64, error)

	// ConfirmBooking transitions a booking from pending to confirmed
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

	// CancelBooking transitions a booking to cancelled
	CancelBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}
