package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

// AttemptRepository stores attempts and their analysis results.
type AttemptRepository struct {
	attempts *mongo.Collection
	results  *mongo.Collection
}

var _ repositories.AttemptRepository = (*AttemptRepository)(nil)

// NewAttemptRepository creates a new MongoDB attempt repository.
func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{
		attempts: db.Collection("attempts"),
		results:  db.Collection("analysis_results"),
	}
}

// CreateAttempt implements repositories.AttemptRepository. Attempts are
// immutable; there is no update path.
func (r *AttemptRepository) CreateAttempt(ctx context.Context, attempt *entities.Attempt) error {
	if attempt == nil {
		return errors.New("attempt cannot be nil")
	}
	if _, err := r.attempts.InsertOne(ctx, attempt); err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

// GetAttempt implements repositories.AttemptRepository.
func (r *AttemptRepository) GetAttempt(ctx context.Context, id string) (*entities.Attempt, error) {
	var attempt entities.Attempt
	err := r.attempts.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt %s: %w", id, err)
	}
	return &attempt, nil
}

// SaveResult implements repositories.AttemptRepository. The write is a
// replace-upsert keyed by attempt ID, so a retried pipeline never leaves a
// duplicate or half-written record.
func (r *AttemptRepository) SaveResult(ctx context.Context, result *entities.AnalysisResult) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}
	if result.AttemptID == "" {
		return errors.New("result attempt ID cannot be empty")
	}
	_, err := r.results.ReplaceOne(
		ctx,
		bson.M{"_id": result.AttemptID},
		result,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	return nil
}

// GetResult implements repositories.AttemptRepository.
func (r *AttemptRepository) GetResult(ctx context.Context, attemptID string) (*entities.AnalysisResult, error) {
	var result entities.AnalysisResult
	err := r.results.FindOne(ctx, bson.M{"_id": attemptID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get analysis result for attempt %s: %w", attemptID, err)
	}
	return &result, nil
}
