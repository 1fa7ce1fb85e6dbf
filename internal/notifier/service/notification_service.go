package service

import (
	"context"
	"log/slog"

	"github.com/aputours/backend/internal/domain/shared"
)

// EmailNotificationService implements NotificationService over SMTP
type EmailNotificationService struct {
	sender ReceiptEmailSender
	logger *slog.Logger
}

// NewEmailNotificationService creates a new e-mail notification service
func NewEmailNotificationService(logger *slog.Logger, sender ReceiptEmailSender) *EmailNotificationService {
	return &EmailNotificationService{
		sender: sender,
		logger: logger,
	}
}

// Notify e-mails the client their issued receipt. Receipts issued without a
// client e-mail address are logged and skipped; that is a data condition, not
// a delivery failure worth retrying.
func (s *EmailNotificationService) Notify(ctx context.Context, event *shared.ReceiptIssuedEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	if event.ClientEmail == "" {
		logger.Info("Receipt has no client email, skipping notification",
			"receipt_id", event.ReceiptID.String(),
			"receipt_code", event.ReceiptCode,
		)
		return nil
	}

	if err := s.sender.SendReceiptEmail(event); err != nil {
		logger.Error("Failed to send receipt email",
			"receipt_id", event.ReceiptID.String(),
			"client_email", event.ClientEmail,
			"error", err,
		)
		return err
	}

	logger.Info("Receipt email sent",
		"receipt_id", event.ReceiptID.String(),
		"receipt_code", event.ReceiptCode,
		"client_email", event.ClientEmail,
	)
	return nil
}
