package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aputours/backend/internal/domain/booking"
)

// BookingServiceImpl implements the BookingService interface
type BookingServiceImpl struct {
	bookingRepo booking.Repository
	logger      *slog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(logger *slog.Logger, bookingRepo booking.Repository) BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateBooking validates and prices a new booking, then persists it
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, in *CreateBookingInput) (*booking.Booking, error) {
	b, err := booking.NewBooking(in.UserID, in.ServiceType, in.DestinationID, in.DestinationName,
		in.StartDate, in.EndDate, in.Adults, in.Children, in.UnitPrice,
		in.FullName, in.Email, in.Phone, in.Document, in.SpecialRequests)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		"booking_id", b.ID.String(),
		"confirmation_code", b.ConfirmationCode,
		"total_price", b.TotalPrice,
	)

	return b, nil
}

// GetBookingByID retrieves a booking by its ID
func (s *BookingServiceImpl) GetBookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// GetBookingByConfirmationCode retrieves a booking by its confirmation code
func (s *BookingServiceImpl) GetBookingByConfirmationCode(ctx context.Context, code string) (*booking.Booking, error) {
	return s.bookingRepo.GetByConfirmationCode(ctx, code)
}

// ListBookingsByUser retrieves a paginated list of a user's bookings
func (s *BookingServiceImpl) ListBookingsByUser(ctx context.Context, userID string, page, perPage int) ([]*booking.Booking, int64, error) {
	limit, offset := pageBounds(page, perPage)

	bookings, err := s.bookingRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.bookingRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ConfirmBooking transitions a booking from pending to confirmed
func (s *BookingServiceImpl) ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.transition(ctx, id, booking.StatusConfirmed)
}

// CancelBooking transitions a booking to cancelled
func (s *BookingServiceImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.transition(ctx, id, booking.StatusCancelled)
}

func (s *BookingServiceImpl) transition(ctx context.Context, id uuid.UUID, status booking.Status) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.Status.CanTransitionTo(status) {
		return nil, booking.ErrInvalidTransition{From: b.Status, To: status}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}
