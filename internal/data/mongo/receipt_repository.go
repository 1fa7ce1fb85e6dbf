// Package mongo provides the MongoDB implementation of the receipt
// repository. Receipts are append-mostly documents; only the status and the
// verification audit fields are ever updated after issuance.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aputours/backend/internal/domain/receipt"
)

const (
	// ReceiptCollectionName is the name of the receipts collection
	ReceiptCollectionName = "receipts"
)

// ReceiptRepository implements receipt.Repository for MongoDB
type ReceiptRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewReceiptRepository creates a new MongoDB receipt repository
func NewReceiptRepository(logger *slog.Logger, db *mongo.Database) receipt.Repository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new receipt after checking that neither of its codes is
// already in use. Returns receipt.ErrDuplicateCode on a collision so the
// service layer can retry with fresh codes.
func (r *ReceiptRepository) Create(ctx context.Context, rec *receipt.Receipt) error {
	collection := r.db.Collection(ReceiptCollectionName)

	filter := bson.M{"$or": []bson.M{
		{"receipt_code": rec.ReceiptCode},
		{"verification_code": rec.VerificationCode},
	}}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to check for existing receipt codes",
			"receipt_code", rec.ReceiptCode,
			"error", err)
		return fmt.Errorf("failed to check for existing receipt codes: %w", err)
	}
	if count > 0 {
		return receipt.ErrDuplicateCode{Code: rec.ReceiptCode}
	}

	if _, err := collection.InsertOne(ctx, rec); err != nil {
		r.logger.Error("Failed to create receipt",
			"receipt_code", rec.ReceiptCode,
			"error", err)
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	return nil
}

// GetByID retrieves a receipt by its id.
// Returns receipt.ErrReceiptNotFound when no receipt matches.
func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	collection := r.db.Collection(ReceiptCollectionName)

	var rec receipt.Receipt
	err := collection.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, receipt.ErrReceiptNotFound{ID: id}
		}
		r.logger.Error("Failed to get receipt", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return &rec, nil
}

// GetByVerificationCode retrieves a receipt by its verification code.
// Returns (nil, nil) when no receipt matches; a miss is a business outcome
// for the verification flow, not a failure.
func (r *ReceiptRepository) GetByVerificationCode(ctx context.Context, code string) (*receipt.Receipt, error) {
	if code == "" {
		return nil, errors.New("verification code cannot be empty")
	}

	collection := r.db.Collection(ReceiptCollectionName)

	var rec receipt.Receipt
	err := collection.FindOne(ctx, bson.M{"verification_code": code}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get receipt by verification code",
			"verification_code", code,
			"error", err)
		return nil, fmt.Errorf("failed to get receipt by verification code: %w", err)
	}

	return &rec, nil
}

// ListByUser retrieves paginated receipts for a user, newest first
func (r *ReceiptRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*receipt.Receipt, error) {
	return r.list(ctx, bson.M{"user_id": userID}, limit, offset)
}

// CountByUser counts all receipts issued to a user
func (r *ReceiptRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, bson.M{"user_id": userID})
}

// ListByProvider retrieves paginated receipts for a provider, newest first
func (r *ReceiptRepository) ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]*receipt.Receipt, error) {
	return r.list(ctx, bson.M{"provider_id": providerID}, limit, offset)
}

// CountByProvider counts all receipts addressed to a provider
func (r *ReceiptRepository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	return r.count(ctx, bson.M{"provider_id": providerID})
}

func (r *ReceiptRepository) list(ctx context.Context, filter bson.M, limit, offset int) ([]*receipt.Receipt, error) {
	collection := r.db.Collection(ReceiptCollectionName)

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list receipts", "error", err)
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer cursor.Close(ctx)

	var receipts []*receipt.Receipt
	if err := cursor.All(ctx, &receipts); err != nil {
		r.logger.Error("Failed to decode receipts", "error", err)
		return nil, fmt.Errorf("failed to decode receipts: %w", err)
	}

	return receipts, nil
}

func (r *ReceiptRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	collection := r.db.Collection(ReceiptCollectionName)

	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count receipts", "error", err)
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	return count, nil
}

// MarkPaid sets status=paid and the payment timestamp.
// Returns receipt.ErrReceiptNotFound if the receipt doesn't exist.
func (r *ReceiptRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":  receipt.StatusPaid,
			"paid_at": paidAt,
		},
	}
	return r.updateOne(ctx, id, update)
}

// SetVerification sets the status and audit fields of a verification
// decision. Monetary fields and the integrity hash are never part of the
// update document.
func (r *ReceiptRepository) SetVerification(ctx context.Context, id uuid.UUID, status receipt.Status, verifiedBy string, verifiedAt time.Time, notes string) error {
	update := bson.M{
		"$set": bson.M{
			"status":             status,
			"verified_by":        verifiedBy,
			"verified_at":        verifiedAt,
			"verification_notes": notes,
		},
	}
	return r.updateOne(ctx, id, update)
}

func (r *ReceiptRepository) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	collection := r.db.Collection(ReceiptCollectionName)

	result, err := collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		r.logger.Error("Failed to update receipt", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	if result.MatchedCount == 0 {
		return receipt.ErrReceiptNotFound{ID: id}
	}

	return nil
}
