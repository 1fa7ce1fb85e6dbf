// Package consumer adapts receipt-issued Kafka messages into notification
// calls.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aputours/backend/internal/domain/shared"
	"github.com/aputours/backend/internal/notifier/service"
	"github.com/aputours/backend/internal/platform/messaging/producers"
)

// ReceiptEventHandler handles incoming receipt-issued messages from Kafka
type ReceiptEventHandler struct {
	notificationService service.NotificationService
	producer            producers.DeadLetterPublisher
	logger              *slog.Logger
}

// NewReceiptEventHandler creates a new handler. The DLQ producer may be nil
// when the dead-letter topic is disabled.
func NewReceiptEventHandler(
	logger *slog.Logger,
	notificationService service.NotificationService,
	producer producers.DeadLetterPublisher,
) *ReceiptEventHandler {
	return &ReceiptEventHandler{
		notificationService: notificationService,
		producer:            producer,
		logger:              logger,
	}
}

// HandleMessage processes one Kafka message. Malformed payloads go to the DLQ
// and are committed; delivery failures are returned so the offset stays
// uncommitted and the message is retried.
func (h *ReceiptEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.ReceiptIssuedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal receipt issued event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received receipt issued event",
		"receipt_id", event.ReceiptID.String(),
		"receipt_code", event.ReceiptCode,
		"client_email", event.ClientEmail,
	)

	if err := h.notificationService.Notify(ctx, &event); err != nil {
		logger.Error("Failed to deliver receipt notification",
			"receipt_id", event.ReceiptID.String(),
			"error", err,
		)
		return fmt.Errorf("notifying receipt %s failed: %w", event.ReceiptID.String(), err)
	}

	logger.Info("Successfully processed receipt issued event", "receipt_id", event.ReceiptID.String())
	return nil
}
