package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

// FeedbackRepository stores per-attempt feedback records.
type FeedbackRepository struct {
	collection *mongo.Collection
}

var _ repositories.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new MongoDB feedback repository.
func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{
		collection: db.Collection("feedback"),
	}
}

// Create implements repositories.FeedbackRepository. The attempt ID is the
// document key, so a second submission for the same attempt hits the
// duplicate-key path and is rejected rather than overwritten.
func (r *FeedbackRepository) Create(ctx context.Context, record *entities.FeedbackRecord) error {
	if record == nil {
		return errors.New("feedback record cannot be nil")
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrFeedbackExists
		}
		return fmt.Errorf("failed to create feedback record: %w", err)
	}
	return nil
}

// GetByAttemptID implements repositories.FeedbackRepository.
func (r *FeedbackRepository) GetByAttemptID(ctx context.Context, attemptID string) (*entities.FeedbackRecord, error) {
	var record entities.FeedbackRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": attemptID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback for attempt %s: %w", attemptID, err)
	}
	return &record, nil
}
