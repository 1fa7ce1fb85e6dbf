// Package postgres provides the PostgreSQL implementation of the booking
// repository. Bookings are relational data with a strict lifecycle, so they
// live in Postgres rather than alongside the receipt documents.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aputours/backend/internal/domain/booking"
	"github.com/aputours/backend/internal/platform/persistence"
)

// BookingRepository implements the booking.Repository interface for PostgreSQL
type BookingRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewBookingRepository creates a new PostgreSQL booking repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewBookingRepository(logger *slog.Logger, db *persistence.PostgresDB) booking.Repository {
	return &BookingRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so multiple booking
// operations can commit atomically.
func (r *BookingRepository) WithTx(tx pgx.Tx) booking.Repository {
	return &BookingRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const bookingColumns = `id, user_id, service_type, destination_id, destination_name,
		start_date, end_date, adults, children, unit_price, total_price, status,
		full_name, email, phone, document, special_requests, confirmation_code,
		created_at, updated_at`

// Create stores a new booking
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.querier.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.ServiceType,
		b.DestinationID,
		b.DestinationName,
		b.StartDate,
		b.EndDate,
		b.Adults,
		b.Children,
		b.UnitPrice,
		b.TotalPrice,
		b.Status,
		b.FullName,
		b.Email,
		b.Phone,
		b.Document,
		b.SpecialRequests,
		b.ConfirmationCode,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create booking", "error", err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by its ID.
// Returns booking.ErrBookingNotFound when no booking matches.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	b, err := r.scanBooking(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrBookingNotFound{ID: id}
		}
		r.logger.Error("Failed to get booking", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

// GetByConfirmationCode retrieves a booking by its confirmation code.
// Returns (nil, nil) when no booking matches.
func (r *BookingRepository) GetByConfirmationCode(ctx context.Context, code string) (*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE confirmation_code = $1
	`

	b, err := r.scanBooking(r.querier.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get booking by confirmation code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get booking by confirmation code: %w", err)
	}

	return b, nil
}

// ListByUser retrieves paginated bookings for a user, newest first
func (r *BookingRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list bookings", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			r.logger.Error("Failed to scan booking row", "error", err)
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	return bookings, nil
}

// CountByUser counts all bookings belonging to a user
func (r *BookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.querier.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.logger.Error("Failed to count bookings", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

// UpdateStatus sets the booking status and bumps updated_at.
// Returns booking.ErrBookingNotFound if the booking doesn't exist.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.querier.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update booking status", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return booking.ErrBookingNotFound{ID: id}
	}

	return nil
}

func (r *BookingRepository) scanBooking(row pgx.Row) (*booking.Booking, error) {
	var b booking.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ServiceType,
		&b.DestinationID,
		&b.DestinationName,
		&b.StartDate,
		&b.EndDate,
		&b.Adults,
		&b.Children,
		&b.UnitPrice,
		&b.TotalPrice,
		&b.Status,
		&b.FullName,
		&b.Email,
		&b.Phone,
		&b.Document,
		&b.SpecialRequests,
		&b.ConfirmationCode,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
