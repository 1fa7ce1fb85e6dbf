// Package service holds the notification pipeline behind the Kafka consumer.
package service

import (
	"context"

	"github.com/aputours/backend/internal/domain/shared"
)

// NotificationService delivers a receipt notification to the client
type NotificationService interface {
	// Notify sends the receipt notification for an issued receipt.
	// Events without a client e-mail address are skipped, not failed.
	Notify(ctx context.Context, event *shared.ReceiptIssuedEvent) error
}

// ReceiptEmailSender renders and sends a receipt e-mail
type ReceiptEmailSender interface {
	SendReceiptEmail(event *shared.ReceiptIssuedEvent) error
}
