package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/aputours/backend/internal/domain/receipt"
	"github.com/aputours/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, rec *receipt.Receipt) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) GetByVerificationCode(ctx context.Context, code string) (*receipt.Receipt, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receipt.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*receipt.Receipt, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*receipt.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptRepository) ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]*receipt.Receipt, error) {
	args := m.Called(ctx, providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*receipt.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	args := m.Called(ctx, id, paidAt)
	return args.Error(0)
}

func (m *MockReceiptRepository) SetVerification(ctx context.Context, id uuid.UUID, status receipt.Status, verifiedBy string, verifiedAt time.Time, notes string) error {
	args := m.Called(ctx, id, status, verifiedBy, verifiedAt, notes)
	return args.Error(0)
}

func TestNewReceiptRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewReceiptRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &ReceiptRepository{}, repo)
}

func TestReceiptRepository_Create(t *testing.T) {
	mockRepo := &MockReceiptRepository{}

	rec := &receipt.Receipt{
		ID:               uuid.New(),
		ReceiptCode:      "APUT0810ABCD",
		VerificationCode: "VERABCD234",
		UserID:           "user-1",
		ServiceType:      shared.ServiceTypeTour,
		ClientName:       "Maria Quispe",
		ClientDocument:   "44556677",
		Subtotal:         300,
		TaxAmount:        54,
		Total:            354,
		Status:           receipt.StatusPending,
		CreatedAt:        time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func()
		expectedError error
	}{
		{
			name: "successful creation",
			setupMocks: func() {
				mockRepo.On("Create", mock.Anything, rec).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate code",
			setupMocks: func() {
				mockRepo.On("Create", mock.Anything, rec).Return(receipt.ErrDuplicateCode{Code: rec.ReceiptCode})
			},
			expectedError: receipt.ErrDuplicateCode{Code: rec.ReceiptCode},
		},
		{
			name: "database error",
			setupMocks: func() {
				mockRepo.On("Create", mock.Anything, rec).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo = &MockReceiptRepository{}
			tt.setupMocks()

			ctx := context.Background()
			err := mockRepo.Create(ctx, rec)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReceiptRepository_GetByVerificationCode(t *testing.T) {
	mockRepo := &MockReceiptRepository{}

	rec := &receipt.Receipt{
		ID:               uuid.New(),
		ReceiptCode:      "APUT0810ABCD",
		VerificationCode: "VERABCD234",
		Status:           receipt.StatusPaid,
	}

	tests := []struct {
		name            string
		setupMocks      func()
		expectedReceipt *receipt.Receipt
		expectedError   error
	}{
		{
			name: "receipt found",
			setupMocks: func() {
				mockRepo.On("GetByVerificationCode", mock.Anything, rec.VerificationCode).Return(rec, nil)
			},
			expectedReceipt: rec,
			expectedError:   nil,
		},
		{
			name: "miss returns nil without error",
			setupMocks: func() {
				mockRepo.On("GetByVerificationCode", mock.Anything, rec.VerificationCode).Return(nil, nil)
			},
			expectedReceipt: nil,
			expectedError:   nil,
		},
		{
			name: "database error",
			setupMocks: func() {
				mockRepo.On("GetByVerificationCode", mock.Anything, rec.VerificationCode).Return(nil, errors.New("db error"))
			},
			expectedReceipt: nil,
			expectedError:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo = &MockReceiptRepository{}
			tt.setupMocks()

			ctx := context.Background()
			result, err := mockRepo.GetByVerificationCode(ctx, rec.VerificationCode)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedReceipt, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReceiptRepository_SetVerification(t *testing.T) {
	mockRepo := &MockReceiptRepository{}

	id := uuid.New()
	status := receipt.StatusVerified
	verifiedBy := "inspector-7"
	verifiedAt := time.Now()
	notes := "checked at the gate"

	tests := []struct {
		name          string
		setupMocks    func()
		expectedError error
	}{
		{
			name: "successful update",
			setupMocks: func() {
				mockRepo.On("SetVerification", mock.Anything, id, status, verifiedBy, verifiedAt, notes).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "receipt not found",
			setupMocks: func() {
				mockRepo.On("SetVerification", mock.Anything, id, status, verifiedBy, verifiedAt, notes).Return(receipt.ErrReceiptNotFound{ID: id})
			},
			expectedError: receipt.ErrReceiptNotFound{ID: id},
		},
		{
			name: "database error",
			setupMocks: func() {
				mockRepo.On("SetVerification", mock.Anything, id, status, verifiedBy, verifiedAt, notes).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo = &MockReceiptRepository{}
			tt.setupMocks()

			ctx := context.Background()
			err := mockRepo.SetVerification(ctx, id, status, verifiedBy, verifiedAt, notes)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
