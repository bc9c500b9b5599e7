package repositories

import (
	"context"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
)

// AttemptRepository defines data access methods for attempts and their
// analysis results.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *entities.Attempt) error
	GetAttempt(ctx context.Context, id string) (*entities.Attempt, error)
	// SaveResult persists the composite analysis result keyed by attempt
	// ID. The write is an idempotent upsert: retrying it never produces a
	// duplicate record.
	SaveResult(ctx context.Context, result *entities.AnalysisResult) error
	GetResult(ctx context.Context, attemptID string) (*entities.AnalysisResult, error)
}

// FeedbackRepository defines data access methods for feedback records.
type FeedbackRepository interface {
	// Create stores the feedback record. A second record for the same
	// attempt is rejected with ErrFeedbackExists.
	Create(ctx context.Context, record *entities.FeedbackRecord) error
	GetByAttemptID(ctx context.Context, attemptID string) (*entities.FeedbackRecord, error)
}

// UserRepository defines data access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
