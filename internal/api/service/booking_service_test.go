package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aputours/backend/internal/domain/booking"
	"github.com/aputours/backend/internal/domain/shared"
)

func validBookingInput() *CreateBookingInput {
	start := time.Date(2025, 8, 10, 14, 0, 0, 0, time.UTC)
	return &CreateBookingInput{
		UserID:          "user-1",
		ServiceType:     shared.ServiceTypeTour,
		DestinationID:   "dest-1",
		DestinationName: "Machu Picchu Full Day",
		StartDate:       start,
		EndDate:         start.Add(24 * time.Hour),
		Adults:          2,
		Children:        0,
		UnitPrice:       150,
		FullName:        "Maria Quispe",
		Email:           "maria@example.com",
		Document:        "44556677",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		bookingRepo.On("Create", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once()

		b, err := svc.CreateBooking(ctx, validBookingInput())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status)
		assert.InDelta(t, 300.0, b.TotalPrice, 1e-9)
		assert.Len(t, b.ConfirmationCode, 10)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("validation failure skips the store", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		in := validBookingInput()
		in.Adults = 0

		_, err := svc.CreateBooking(ctx, in)
		assert.ErrorIs(t, err, booking.ErrNoAdults)
		bookingRepo.AssertNotCalled(t, "Create")
	})

	t.Run("store failure", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		storeErr := errors.New("connection reset")
		bookingRepo.On("Create", ctx, mock.Anything).Return(storeErr).Once()

		_, err := svc.CreateBooking(ctx, validBookingInput())
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestConfirmBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("pending becomes confirmed", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		b := &booking.Booking{ID: uuid.New(), Status: booking.StatusPending}
		bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		bookingRepo.On("UpdateStatus", ctx, b.ID, booking.StatusConfirmed).Return(nil).Once()

		updated, err := svc.ConfirmBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, updated.Status)
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		b := &booking.Booking{ID: uuid.New(), Status: booking.StatusCancelled}
		bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := svc.ConfirmBooking(ctx, b.ID)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition{})
		bookingRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("missing booking", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		id := uuid.New()
		bookingRepo.On("GetByID", ctx, id).Return(nil, booking.ErrBookingNotFound{ID: id}).Once()

		_, err := svc.ConfirmBooking(ctx, id)
		assert.ErrorIs(t, err, booking.ErrBookingNotFound{})
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed becomes cancelled", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		b := &booking.Booking{ID: uuid.New(), Status: booking.StatusConfirmed}
		bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()
		bookingRepo.On("UpdateStatus", ctx, b.ID, booking.StatusCancelled).Return(nil).Once()

		updated, err := svc.CancelBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, updated.Status)
	})

	t.Run("cancelling twice is refused", func(t *testing.T) {
		bookingRepo := &MockBookingRepository{}
		svc := NewBookingService(newTestLogger(), bookingRepo)

		b := &booking.Booking{ID: uuid.New(), Status: booking.StatusCancelled}
		bookingRepo.On("GetByID", ctx, b.ID).Return(b, nil).Once()

		_, err := svc.CancelBooking(ctx, b.ID)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition{})
	})
}

func TestListBookingsByUser(t *testing.T) {
	ctx := context.Background()
	bookingRepo := &MockBookingRepository{}
	svc := NewBookingService(newTestLogger(), bookingRepo)

	expected := []*booking.Booking{{ID: uuid.New()}}
	bookingRepo.On("ListByUser", ctx, "user-1", 10, 0).Return(expected, nil).Once()
	bookingRepo.On("CountByUser", ctx, "user-1").Return(int64(1), nil).Once()

	bookings, total, err := svc.ListBookingsByUser(ctx, "user-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, expected, bookings)
	assert.Equal(t, int64(1), total)
}

func TestGetBookingByConfirmationCode(t *testing.T) {
	ctx := context.Background()
	bookingRepo := &MockBookingRepository{}
	svc := NewBookingService(newTestLogger(), bookingRepo)

	bookingRepo.On("GetByConfirmationCode", ctx, "APUABCDEFG").Return(nil, nil).Once()

	b, err := svc.GetBookingByConfirmationCode(ctx, "APUABCDEFG")
	require.NoError(t, err)
	assert.Nil(t, b)
}
