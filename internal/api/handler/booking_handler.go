package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aputours/backend/internal/api/service"
	"github.com/aputours/backend/internal/domain/booking"
	"github.com/aputours/backend/internal/domain/shared"
)

// BookingHandler handles HTTP requests for booking operations
type BookingHandler struct {
	bookingService service.BookingService
	logger         *slog.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(logger *slog.Logger, bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// Create handles creation of a new booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		RespondBadRequest(c, "Invalid start_date")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		RespondBadRequest(c, "Invalid end_date")
		return
	}

	b, err := h.bookingService.CreateBooking(c.Request.Context(), &service.CreateBookingInput{
		UserID:          req.UserID,
		ServiceType:     shared.ServiceType(req.ServiceType),
		DestinationID:   req.DestinationID,
		DestinationName: req.DestinationName,
		StartDate:       startDate,
		EndDate:         endDate,
		Adults:          req.Adults,
		Children:        req.Children,
		UnitPrice:       req.UnitPrice,
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Document:        req.Document,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.respondBookingError(c, err, "Failed to create booking")
		return
	}

	RespondCreated(c, mapBookingToResponse(b))
}

// GetByID retrieves a booking by its ID, returning 404 if not found
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid booking ID")
		return
	}

	b, err := h.bookingService.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		h.respondBookingError(c, err, "Failed to get booking")
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// GetByConfirmationCode retrieves a booking by its confirmation code
func (h *BookingHandler) GetByConfirmationCode(c *gin.Context) {
	b, err := h.bookingService.GetBookingByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.logger.Error("Failed to get booking by confirmation code", "error", err)
		RespondInternalError(c)
		return
	}
	if b == nil {
		RespondNotFound(c, "Booking not found")
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// List retrieves paginated bookings for a user, newest first
func (h *BookingHandler) List(c *gin.Context) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		RespondBadRequest(c, "user_id is required")
		return
	}

	bookings, total, err := h.bookingService.ListBookingsByUser(c.Request.Context(), userID, params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to list bookings", "user_id", userID, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, mapBookingToResponse(b))
	}

	RespondWithPaginatedData(c, 200, responses, params.Page, params.PerPage, int(total))
}

// Confirm transitions a booking from pending to confirmed
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookingService.ConfirmBooking, "Failed to confirm booking")
}

// Cancel transitions a booking to cancelled
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.bookingService.CancelBooking, "Failed to cancel booking")
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*booking.Booking, error), logMsg string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid booking ID")
		return
	}

	b, err := op(c.Request.Context(), id)
	if err != nil {
		h.respondBookingError(c, err, logMsg)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// respondBookingError maps service errors to HTTP statuses: validation to
// 400, missing bookings to 404, forbidden transitions to 409
func (h *BookingHandler) respondBookingError(c *gin.Context, err error, logMsg string) {
	var notFound booking.ErrBookingNotFound
	if errors.As(err, &notFound) {
		RespondNotFound(c, "Booking not found")
		return
	}

	var invalidTransition booking.ErrInvalidTransition
	if errors.As(err, &invalidTransition) {
		RespondConflict(c, invalidTransition.Error())
		return
	}

	switch {
	case errors.Is(err, booking.ErrEmptyUserID),
		errors.Is(err, booking.ErrEmptyFullName),
		errors.Is(err, booking.ErrInvalidServiceType),
		errors.Is(err, booking.ErrNoAdults),
		errors.Is(err, booking.ErrNegativeChildren),
		errors.Is(err, booking.ErrNegativeUnitPrice),
		errors.Is(err, booking.ErrEndBeforeStart):
		RespondBadRequest(c, err.Error())
		return
	}

	h.logger.Error(logMsg, "error", err)
	RespondInternalError(c)
}

// mapBookingToResponse maps a booking entity to a booking response DTO
func mapBookingToResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID.String(),
		UserID:           b.UserID,
		ServiceType:      string(b.ServiceType),
		DestinationID:    b.DestinationID,
		DestinationName:  b.DestinationName,
		StartDate:        b.StartDate.Format(time.RFC3339),
		EndDate:          b.EndDate.Format(time.RFC3339),
		Adults:           b.Adults,
		Children:         b.Children,
		UnitPrice:        b.UnitPrice,
		TotalPrice:       b.TotalPrice,
		Status:           string(b.Status),
		FullName:         b.FullName,
		Email:            b.Email,
		Phone:            b.Phone,
		Document:         b.Document,
		SpecialRequests:  b.SpecialRequests,
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
}

// parseDate accepts RFC 3339 timestamps and bare dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
