package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/aputours/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReceiptEmailSender mocks the ReceiptEmailSender interface
type MockReceiptEmailSender struct {
	mock.Mock
}

func (m *MockReceiptEmailSender) SendReceiptEmail(event *shared.ReceiptIssuedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func testEvent() *shared.ReceiptIssuedEvent {
	return &shared.ReceiptIssuedEvent{
		ReceiptID:          uuid.New(),
		ReceiptCode:        "APUT0810ABCD",
		VerificationCode:   "VERABCD234",
		ServiceType:        shared.ServiceTypeTour,
		ServiceDescription: "Machu Picchu Full Day",
		ClientName:         "Maria Quispe",
		ClientEmail:        "maria@example.com",
		Total:              354,
		IssuedAt:           time.Now(),
	}
}

func TestEmailNotificationService_Notify(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("sends the receipt email", func(t *testing.T) {
		sender := &MockReceiptEmailSender{}
		svc := NewEmailNotificationService(logger, sender)

		event := testEvent()
		sender.On("SendReceiptEmail", event).Return(nil).Once()

		err := svc.Notify(ctx, event)
		assert.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("missing client email is skipped without error", func(t *testing.T) {
		sender := &MockReceiptEmailSender{}
		svc := NewEmailNotificationService(logger, sender)

		event := testEvent()
		event.ClientEmail = ""

		err := svc.Notify(ctx, event)
		assert.NoError(t, err)
		sender.AssertNotCalled(t, "SendReceiptEmail")
	})

	t.Run("sender failure propagates", func(t *testing.T) {
		sender := &MockReceiptEmailSender{}
		svc := NewEmailNotificationService(logger, sender)

		event := testEvent()
		sendErr := errors.New("smtp down")
		sender.On("SendReceiptEmail", event).Return(sendErr).Once()

		err := svc.Notify(ctx, event)
		assert.ErrorIs(t, err, sendErr)
	})
}
