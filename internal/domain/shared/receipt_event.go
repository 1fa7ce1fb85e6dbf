package shared

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptIssuedEvent is the Kafka message published when a receipt is issued.
// The notifier consumes it to send the client their receipt by e-mail.
type ReceiptIssuedEvent struct {
	ReceiptID          uuid.UUID   `json:"receipt_id"`
	ReceiptCode        string      `json:"receipt_code"`
	VerificationCode   string      `json:"verification_code"`
	BookingID          uuid.UUID   `json:"booking_id"`
	ServiceType        ServiceType `json:"service_type"`
	ServiceDescription string      `json:"service_description"`
	ProviderName       string      `json:"provider_name"`
	ClientName         string      `json:"client_name"`
	ClientEmail        string      `json:"client_email"`
	Total              float64     `json:"total"`
	CorrelationID      string      `json:"correlation_id,omitempty"`
	IssuedAt           time.Time   `json:"issued_at"`
}
