package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aputours/backend/internal/domain/booking"
	"github.com/aputours/backend/internal/domain/receipt"
	"github.com/aputours/backend/internal/domain/shared"
	"github.com/aputours/backend/internal/platform/messaging/producers"
)

// createMaxAttempts bounds the retry loop on duplicate receipt or
// verification codes. Collisions are rare (32^4 date-scoped receipt
// suffixes, 32^7 verification codes), so three draws is plenty.
const createMaxAttempts = 3

// Verification result messages
const (
	msgNotFound        = "no receipt matches this verification code"
	msgTampered        = "integrity check failed: receipt data does not match its fingerprint"
	msgCancelled       = "receipt has been cancelled"
	msgRejected        = "receipt has been rejected"
	msgAuthentic       = "receipt is authentic"
	msgAlreadyVerified = "receipt is authentic and was already verified"
)

// ReceiptServiceImpl implements the ReceiptService interface
type ReceiptServiceImpl struct {
	receiptRepo receipt.Repository
	bookingRepo booking.Repository
	producer    producers.MessagePublisher
	logger      *slog.Logger
	hashSecret  string
}

// NewReceiptService creates a new receipt service. The producer may be nil
// when event publishing is disabled.
func NewReceiptService(logger *slog.Logger, receiptRepo receipt.Repository, bookingRepo booking.Repository, producer producers.MessagePublisher, hashSecret string) ReceiptService {
	return &ReceiptServiceImpl{
		receiptRepo: receiptRepo,
		bookingRepo: bookingRepo,
		producer:    producer,
		logger:      logger,
		hashSecret:  hashSecret,
	}
}

// CreateReceipt issues a receipt: validates the input, applies tax and
// discount defaults, generates codes, computes the integrity hash, and
// persists. On a duplicate-code collision it redraws codes and retries up to
// createMaxAttempts times. Publishing the issued event is best-effort.
func (s *ReceiptServiceImpl) CreateReceipt(ctx context.Context, in *CreateReceiptInput) (*receipt.Receipt, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	taxAmount := in.Subtotal * receipt.DefaultTaxRate
	if in.TaxAmount != nil {
		taxAmount = *in.TaxAmount
	}
	total := in.Subtotal + taxAmount - in.Discount

	var rec *receipt.Receipt
	var lastErr error
	for attempt := 1; attempt <= createMaxAttempts; attempt++ {
		receiptCode, err := receipt.NewReceiptCode(in.ServiceType, time.Now())
		if err != nil {
			return nil, err
		}
		verificationCode := receipt.NewVerificationCode()

		candidate := &receipt.Receipt{
			ID:                 uuid.New(),
			ReceiptCode:        receiptCode,
			VerificationCode:   verificationCode,
			BookingID:          in.BookingID,
			UserID:             in.UserID,
			ServiceType:        in.ServiceType,
			ProviderID:         in.ProviderID,
			ProviderName:       in.ProviderName,
			ClientName:         in.ClientName,
			ClientEmail:        in.ClientEmail,
			ClientDocument:     in.ClientDocument,
			ClientPhone:        in.ClientPhone,
			ServiceDescription: in.ServiceDescription,
			ServiceStartDate:   in.ServiceStartDate,
			ServiceEndDate:     in.ServiceEndDate,
			PersonCount:        in.PersonCount,
			Subtotal:           in.Subtotal,
			TaxAmount:          taxAmount,
			Discount:           in.Discount,
			Total:              total,
			Status:             receipt.StatusPending,
			PaymentMethod:      in.PaymentMethod,
			IntegrityHash:      receipt.ComputeIntegrityHash(receiptCode, verificationCode, in.ClientDocument, total, s.hashSecret),
			CreatedAt:          time.Now(),
		}

		if err := s.receiptRepo.Create(ctx, candidate); err != nil {
			if errors.Is(err, receipt.ErrDuplicateCode{}) {
				s.logger.Warn("Receipt code collision, retrying with fresh codes",
					"attempt", attempt,
					"receipt_code", receiptCode,
				)
				lastErr = err
				continue
			}
			return nil, err
		}

		rec = candidate
		break
	}
	if rec == nil {
		return nil, fmt.Errorf("failed to generate unique receipt codes after %d attempts: %w", createMaxAttempts, lastErr)
	}

	s.publishIssuedEvent(ctx, rec, in.CorrelationID)

	return rec, nil
}

// IssueForBooking maps a confirmed booking onto receipt input and issues the
// receipt. The booking total becomes the receipt subtotal.
func (s *ReceiptServiceImpl) IssueForBooking(ctx context.Context, bookingID uuid.UUID, in *IssueForBookingInput) (*receipt.Receipt, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusConfirmed {
		return nil, ErrBookingNotConfirmed
	}

	description := in.ServiceDescription
	if description == "" {
		description = b.DestinationName
	}

	endDate := b.EndDate
	return s.CreateReceipt(ctx, &CreateReceiptInput{
		BookingID:          b.ID,
		UserID:             b.UserID,
		ServiceType:        b.ServiceType,
		ProviderID:         in.ProviderID,
		ProviderName:       in.ProviderName,
		ClientName:         b.FullName,
		ClientEmail:        b.Email,
		ClientDocument:     b.Document,
		ClientPhone:        b.Phone,
		ServiceDescription: description,
		ServiceStartDate:   b.StartDate,
		ServiceEndDate:     &endDate,
		PersonCount:        b.PersonCount(),
		Subtotal:           b.TotalPrice,
		TaxAmount:          in.TaxAmount,
		Discount:           in.Discount,
		PaymentMethod:      in.PaymentMethod,
		CorrelationID:      in.CorrelationID,
	})
}

// GetReceiptByID retrieves a receipt by its ID
func (s *ReceiptServiceImpl) GetReceiptByID(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	return s.receiptRepo.GetByID(ctx, id)
}

// ListReceiptsByUser retrieves a paginated list of a user's receipts
func (s *ReceiptServiceImpl) ListReceiptsByUser(ctx context.Context, userID string, page, perPage int) ([]*receipt.Receipt, int64, error) {
	limit, offset := pageBounds(page, perPage)

	receipts, err := s.receiptRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}

// ListReceiptsByProvider retrieves a paginated list of a provider's receipts
func (s *ReceiptServiceImpl) ListReceiptsByProvider(ctx context.Context, providerID string, page, perPage int) ([]*receipt.Receipt, int64, error) {
	limit, offset := pageBounds(page, perPage)

	receipts, err := s.receiptRepo.ListByProvider(ctx, providerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.CountByProvider(ctx, providerID)
	if err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}

// Verify checks a verification code against the store. A miss, a hash
// mismatch, and a cancelled or rejected status all yield invalid results with
// a human-readable message; only store failures return an error. The receipt
// accompanies a hash mismatch so the suspect document can be audited.
func (s *ReceiptServiceImpl) Verify(ctx context.Context, verificationCode string) (*VerificationResult, error) {
	normalized := receipt.NormalizeVerificationCode(verificationCode)

	rec, err := s.receiptRepo.GetByVerificationCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &VerificationResult{Valid: false, Message: msgNotFound}, nil
	}

	if !rec.VerifyIntegrity(s.hashSecret) {
		s.logger.Warn("Receipt integrity check failed",
			"receipt_code", rec.ReceiptCode,
			"verification_code", normalized,
		)
		return &VerificationResult{Valid: false, Message: msgTampered, Receipt: rec}, nil
	}

	switch rec.Status {
	case receipt.StatusCancelled:
		return &VerificationResult{Valid: false, Message: msgCancelled, Receipt: rec}, nil
	case receipt.StatusRejected:
		return &VerificationResult{Valid: false, Message: msgRejected, Receipt: rec}, nil
	case receipt.StatusVerified:
		return &VerificationResult{Valid: true, Message: msgAlreadyVerified, Receipt: rec}, nil
	default:
		return &VerificationResult{Valid: true, Message: msgAuthentic, Receipt: rec}, nil
	}
}

// MarkPaid transitions a receipt to paid and stamps the payment time
func (s *ReceiptServiceImpl) MarkPaid(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	rec, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rec.Status.CanTransitionTo(receipt.StatusPaid) {
		return nil, receipt.ErrInvalidTransition{From: rec.Status, To: receipt.StatusPaid}
	}

	paidAt := time.Now()
	if err := s.receiptRepo.MarkPaid(ctx, id, paidAt); err != nil {
		return nil, err
	}

	rec.Status = receipt.StatusPaid
	rec.PaidAt = &paidAt
	return rec, nil
}

// MarkVerified transitions a receipt to verified with the audit fields.
// Forbidden from rejected and cancelled.
func (s *ReceiptServiceImpl) MarkVerified(ctx context.Context, id uuid.UUID, verifiedBy, notes string) (*receipt.Receipt, error) {
	return s.setVerification(ctx, id, receipt.StatusVerified, verifiedBy, notes)
}

// Reject transitions a receipt to rejected. The reason is validated before
// any store call and is stored as the verification notes.
func (s *ReceiptServiceImpl) Reject(ctx context.Context, id uuid.UUID, verifiedBy, reason string) (*receipt.Receipt, error) {
	if reason == "" {
		return nil, receipt.ErrEmptyRejectReason
	}
	return s.setVerification(ctx, id, receipt.StatusRejected, verifiedBy, reason)
}

func (s *ReceiptServiceImpl) setVerification(ctx context.Context, id uuid.UUID, status receipt.Status, verifiedBy, notes string) (*receipt.Receipt, error) {
	rec, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rec.Status.CanTransitionTo(status) {
		return nil, receipt.ErrInvalidTransition{From: rec.Status, To: status}
	}

	verifiedAt := time.Now()
	if err := s.receiptRepo.SetVerification(ctx, id, status, verifiedBy, verifiedAt, notes); err != nil {
		return nil, err
	}

	rec.Status = status
	rec.VerifiedBy = verifiedBy
	rec.VerifiedAt = &verifiedAt
	rec.VerificationNotes = notes
	return rec, nil
}

// publishIssuedEvent notifies the mailer that a receipt was issued. Failures
// are logged, never surfaced: the receipt is already persisted and the client
// can always retrieve it from the API.
func (s *ReceiptServiceImpl) publishIssuedEvent(ctx context.Context, rec *receipt.Receipt, correlationID string) {
	if s.producer == nil {
		return
	}

	event := &shared.ReceiptIssuedEvent{
		ReceiptID:          rec.ID,
		ReceiptCode:        rec.ReceiptCode,
		VerificationCode:   rec.VerificationCode,
		BookingID:          rec.BookingID,
		ServiceType:        rec.ServiceType,
		ServiceDescription: rec.ServiceDescription,
		ProviderName:       rec.ProviderName,
		ClientName:         rec.ClientName,
		ClientEmail:        rec.ClientEmail,
		Total:              rec.Total,
		CorrelationID:      correlationID,
		IssuedAt:           rec.CreatedAt,
	}

	if err := s.producer.Publish(ctx, rec.ID.String(), event); err != nil {
		s.logger.Error("Failed to publish receipt issued event",
			"receipt_id", rec.ID.String(),
			"error", err,
		)
	}
}

func validateCreateInput(in *CreateReceiptInput) error {
	if !in.ServiceType.Valid() {
		return receipt.ErrInvalidServiceType
	}
	if in.ClientDocument == "" {
		return receipt.ErrEmptyClientDocument
	}
	if in.PersonCount < 0 {
		return receipt.ErrNegativePersonCount
	}
	if in.Subtotal < 0 || in.Discount < 0 || (in.TaxAmount != nil && *in.TaxAmount < 0) {
		return receipt.ErrNegativeAmount
	}
	return nil
}

func pageBounds(page, perPage int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}
