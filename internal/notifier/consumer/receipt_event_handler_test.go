package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/aputours/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationService for testing
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, event *shared.ReceiptIssuedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockDeadLetterPublisher for testing
type MockDeadLetterPublisher struct {
	mock.Mock
}

func (m *MockDeadLetterPublisher) PublishToDLQ(ctx context.Context, key string, value []byte, reason string) error {
	args := m.Called(ctx, key, value, reason)
	return args.Error(0)
}

func (m *MockDeadLetterPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestHandleMessage(t *testing.T) {
	mockNotificationService := &MockNotificationService{}
	mockDLQPublisher := &MockDeadLetterPublisher{}
	logger := slog.Default()

	handler := NewReceiptEventHandler(logger, mockNotificationService, mockDLQPublisher)

	validEvent := &shared.ReceiptIssuedEvent{
		ReceiptID:          uuid.New(),
		ReceiptCode:        "APUT0810ABCD",
		VerificationCode:   "VERABCD234",
		BookingID:          uuid.New(),
		ServiceType:        shared.ServiceTypeTour,
		ServiceDescription: "Machu Picchu Full Day",
		ClientName:         "Maria Quispe",
		ClientEmail:        "maria@example.com",
		Total:              354,
		CorrelationID:      "corr1",
		IssuedAt:           time.Now(),
	}

	validJSON, err := json.Marshal(validEvent)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		key           []byte
		value         []byte
		setupMocks    func()
		expectedError error
	}{
		{
			name:  "successful notification",
			key:   []byte("test-key"),
			value: validJSON,
			setupMocks: func() {
				mockNotificationService.On("Notify", mock.Anything, mock.MatchedBy(func(event *shared.ReceiptIssuedEvent) bool {
					return event.ReceiptID == validEvent.ReceiptID
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "notification error",
			key:   []byte("test-key"),
			value: validJSON,
			setupMocks: func() {
				mockNotificationService.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
			},
			expectedError: errors.New("notifying receipt"),
		},
		{
			name:  "unmarshal error with successful DLQ publish",
			key:   []byte("test-key"),
			value: []byte("invalid json"),
			setupMocks: func() {
				mockDLQPublisher.On("PublishToDLQ", mock.Anything, "test-key", []byte("invalid json"), mock.Anything).Return(nil)
			},
			expectedError: nil, // No error because message was successfully sent to DLQ
		},
		{
			name:  "unmarshal error with DLQ publish failure",
			key:   []byte("test-key"),
			value: []byte("invalid json"),
			setupMocks: func() {
				mockDLQPublisher.On("PublishToDLQ", mock.Anything, "test-key", []byte("invalid json"), mock.Anything).Return(errors.New("dlq error"))
			},
			expectedError: errors.New("failed to unmarshal"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNotificationService = &MockNotificationService{}
			mockDLQPublisher = &MockDeadLetterPublisher{}
			mockDLQPublisher.On("Close").Return(nil).Maybe()

			handler = NewReceiptEventHandler(logger, mockNotificationService, mockDLQPublisher)

			tt.setupMocks()
			ctx := context.Background()

			err := handler.HandleMessage(ctx, tt.key, tt.value)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockNotificationService.AssertExpectations(t)
			mockDLQPublisher.AssertExpectations(t)
		})
	}
}

func TestHandleMessageWithoutDLQ(t *testing.T) {
	mockNotificationService := &MockNotificationService{}
	logger := slog.Default()

	handler := NewReceiptEventHandler(logger, mockNotificationService, nil)

	err := handler.HandleMessage(context.Background(), []byte("test-key"), []byte("invalid json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
	mockNotificationService.AssertNotCalled(t, "Notify")
}
