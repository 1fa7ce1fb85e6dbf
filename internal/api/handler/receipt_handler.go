package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aputours/backend/internal/api/middleware"
	"github.com/aputours/backend/internal/api/service"
	"github.com/aputours/backend/internal/domain/booking"
	"github.com/aputours/backend/internal/domain/receipt"
	"github.com/aputours/backend/internal/domain/shared"
)

// ReceiptHandler handles HTTP requests for receipt operations
type ReceiptHandler struct {
	receiptService service.ReceiptService
	logger         *slog.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(logger *slog.Logger, receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		logger:         logger,
	}
}

// Create issues a receipt from explicit input
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	in, err := mapCreateReceiptRequest(&req)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	in.CorrelationID = middleware.GetCorrelationID(c)

	rec, err := h.receiptService.CreateReceipt(c.Request.Context(), in)
	if err != nil {
		h.respondReceiptError(c, err, "Failed to create receipt")
		return
	}

	RespondCreated(c, mapReceiptToResponse(rec))
}

// IssueForBooking issues a receipt for a confirmed booking
func (h *ReceiptHandler) IssueForBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid booking ID")
		return
	}

	var req IssueReceiptForBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.receiptService.IssueForBooking(c.Request.Context(), bookingID, &service.IssueForBookingInput{
		ProviderID:         req.ProviderID,
		ProviderName:       req.ProviderName,
		ServiceDescription: req.ServiceDescription,
		TaxAmount:          req.TaxAmount,
		Discount:           req.Discount,
		PaymentMethod:      req.PaymentMethod,
		CorrelationID:      middleware.GetCorrelationID(c),
	})
	if err != nil {
		if errors.Is(err, service.ErrBookingNotConfirmed) {
			RespondConflict(c, err.Error())
			return
		}
		h.respondReceiptError(c, err, "Failed to issue receipt for booking")
		return
	}

	RespondCreated(c, mapReceiptToResponse(rec))
}

// GetByID retrieves a receipt by its ID, returning 404 if not found
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid receipt ID")
		return
	}

	rec, err := h.receiptService.GetReceiptByID(c.Request.Context(), id)
	if err != nil {
		h.respondReceiptError(c, err, "Failed to get receipt")
		return
	}

	RespondOK(c, mapReceiptToResponse(rec))
}

// List retrieves paginated receipts for a user or a provider, newest first.
// Exactly one of user_id and provider_id must be supplied.
func (h *ReceiptHandler) List(c *gin.Context) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	userID := c.Query("user_id")
	providerID := c.Query("provider_id")
	if (userID == "") == (providerID == "") {
		RespondBadRequest(c, "Exactly one of user_id and provider_id must be provided")
		return
	}

	var (
		receipts []*receipt.Receipt
		total    int64
		err      error
	)
	if userID != "" {
		receipts, total, err = h.receiptService.ListReceiptsByUser(c.Request.Context(), userID, params.Page, params.PerPage)
	} else {
		receipts, total, err = h.receiptService.ListReceiptsByProvider(c.Request.Context(), providerID, params.Page, params.PerPage)
	}
	if err != nil {
		h.logger.Error("Failed to list receipts", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]*ReceiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		responses = append(responses, mapReceiptToResponse(rec))
	}

	RespondWithPaginatedData(c, 200, responses, params.Page, params.PerPage, int(total))
}

// MarkPaid transitions a receipt to paid
func (h *ReceiptHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid receipt ID")
		return
	}

	rec, err := h.receiptService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.respondReceiptError(c, err, "Failed to mark receipt paid")
		return
	}

	RespondOK(c, mapReceiptToResponse(rec))
}

// MarkVerified transitions a receipt to verified
func (h *ReceiptHandler) MarkVerified(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid receipt ID")
		return
	}

	var req MarkVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.receiptService.MarkVerified(c.Request.Context(), id, req.VerifiedBy, req.Notes)
	if err != nil {
		h.respondReceiptError(c, err, "Failed to mark receipt verified")
		return
	}

	RespondOK(c, mapReceiptToResponse(rec))
}

// Reject transitions a receipt to rejected; the reason is mandatory
func (h *ReceiptHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid receipt ID")
		return
	}

	var req RejectReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.receiptService.Reject(c.Request.Context(), id, req.VerifiedBy, req.Reason)
	if err != nil {
		h.respondReceiptError(c, err, "Failed to reject receipt")
		return
	}

	RespondOK(c, mapReceiptToResponse(rec))
}

// Verify is the public verification endpoint. Misses, tampering, and blocked
// statuses are all 200 responses with valid=false; only a store failure is an
// error status.
func (h *ReceiptHandler) Verify(c *gin.Context) {
	result, err := h.receiptService.Verify(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.logger.Error("Verification lookup failed", "error", err)
		RespondInternalError(c)
		return
	}

	response := &VerificationResponse{
		Valid:   result.Valid,
		Message: result.Message,
	}
	if result.Receipt != nil {
		response.Receipt = mapReceiptToResponse(result.Receipt)
	}

	RespondOK(c, response)
}

// respondReceiptError maps service errors to HTTP statuses: validation to
// 400, missing receipts or bookings to 404, forbidden transitions to 409
func (h *ReceiptHandler) respondReceiptError(c *gin.Context, err error, logMsg string) {
	var notFound receipt.ErrReceiptNotFound
	if errors.As(err, &notFound) {
		RespondNotFound(c, "Receipt not found")
		return
	}

	var bookingNotFound booking.ErrBookingNotFound
	if errors.As(err, &bookingNotFound) {
		RespondNotFound(c, "Booking not found")
		return
	}

	var invalidTransition receipt.ErrInvalidTransition
	if errors.As(err, &invalidTransition) {
		RespondConflict(c, invalidTransition.Error())
		return
	}

	switch {
	case errors.Is(err, receipt.ErrInvalidServiceType),
		errors.Is(err, receipt.ErrEmptyClientDocument),
		errors.Is(err, receipt.ErrNegativePersonCount),
		errors.Is(err, receipt.ErrNegativeAmount),
		errors.Is(err, receipt.ErrEmptyRejectReason):
		RespondBadRequest(c, err.Error())
		return
	}

	h.logger.Error(logMsg, "error", err)
	RespondInternalError(c)
}

func mapCreateReceiptRequest(req *CreateReceiptRequest) (*service.CreateReceiptInput, error) {
	var bookingID uuid.UUID
	if req.BookingID != "" {
		id, err := uuid.Parse(req.BookingID)
		if err != nil {
			return nil, errors.New("invalid booking_id")
		}
		bookingID = id
	}

	startDate, err := parseDate(req.ServiceStartDate)
	if err != nil {
		return nil, errors.New("invalid service_start_date")
	}

	var endDate *time.Time
	if req.ServiceEndDate != "" {
		parsed, err := parseDate(req.ServiceEndDate)
		if err != nil {
			return nil, errors.New("invalid service_end_date")
		}
		endDate = &parsed
	}

	return &service.CreateReceiptInput{
		BookingID:          bookingID,
		UserID:             req.UserID,
		ServiceType:        shared.ServiceType(req.ServiceType),
		ProviderID:         req.ProviderID,
		ProviderName:       req.ProviderName,
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		ClientDocument:     req.ClientDocument,
		ClientPhone:        req.ClientPhone,
		ServiceDescription: req.ServiceDescription,
		ServiceStartDate:   startDate,
		ServiceEndDate:     endDate,
		PersonCount:        req.PersonCount,
		Subtotal:           req.Subtotal,
		TaxAmount:          req.TaxAmount,
		Discount:           req.Discount,
		PaymentMethod:      req.PaymentMethod,
	}, nil
}

// mapReceiptToResponse maps a receipt entity to a response DTO. The integrity
// hash stays internal.
func mapReceiptToResponse(rec *receipt.Receipt) *ReceiptResponse {
	response := &ReceiptResponse{
		ID:                 rec.ID.String(),
		ReceiptCode:        rec.ReceiptCode,
		VerificationCode:   rec.VerificationCode,
		UserID:             rec.UserID,
		ServiceType:        string(rec.ServiceType),
		ProviderID:         rec.ProviderID,
		ProviderName:       rec.ProviderName,
		ClientName:         rec.ClientName,
		ClientEmail:        rec.ClientEmail,
		ClientDocument:     rec.ClientDocument,
		ClientPhone:        rec.ClientPhone,
		ServiceDescription: rec.ServiceDescription,
		ServiceStartDate:   rec.ServiceStartDate.Format(time.RFC3339),
		PersonCount:        rec.PersonCount,
		Subtotal:           rec.Subtotal,
		TaxAmount:          rec.TaxAmount,
		Discount:           rec.Discount,
		Total:              rec.Total,
		Status:             string(rec.Status),
		PaymentMethod:      rec.PaymentMethod,
		VerifiedBy:         rec.VerifiedBy,
		VerificationNotes:  rec.VerificationNotes,
		CreatedAt:          rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.BookingID != uuid.Nil {
		response.BookingID = rec.BookingID.String()
	}
	if rec.ServiceEndDate != nil {
		response.ServiceEndDate = rec.ServiceEndDate.Format(time.RFC3339)
	}
	if rec.PaidAt != nil {
		response.PaidAt = rec.PaidAt.Format(time.RFC3339)
	}
	if rec.VerifiedAt != nil {
		response.VerifiedAt = rec.VerifiedAt.Format(time.RFC3339)
	}
	return response
}
