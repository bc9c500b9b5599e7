// Package adapters hosts the in-memory repository implementations used by
// dev mode and tests. They honor the same contracts as the MongoDB
// implementations, including idempotent result upserts and at-most-one
// feedback record per attempt.
package adapters

import (
	"context"
	"sync"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

// MemoryAttemptRepository is an in-memory AttemptRepository.
// Safe for concurrent use.
type MemoryAttemptRepository struct {
	mu       sync.RWMutex
	attempts map[string]entities.Attempt
	results  map[string]entities.AnalysisResult
}

var _ repositories.AttemptRepository = (*MemoryAttemptRepository)(nil)

// NewMemoryAttemptRepository creates an empty in-memory attempt repository.
func NewMemoryAttemptRepository() *MemoryAttemptRepository {
	return &MemoryAttemptRepository{
		attempts: make(map[string]entities.Attempt),
		results:  make(map[string]entities.AnalysisResult),
	}
}

// CreateAttempt implements repositories.AttemptRepository.
func (r *MemoryAttemptRepository) CreateAttempt(ctx context.Context, attempt *entities.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[attempt.ID] = *attempt
	return nil
}

// GetAttempt implements repositories.AttemptRepository.
func (r *MemoryAttemptRepository) GetAttempt(ctx context.Context, id string) (*entities.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, repositories.ErrAttemptNotFound
	}
	return &attempt, nil
}

// SaveResult implements repositories.AttemptRepository. Saving twice for
// the same attempt replaces the record, mirroring the MongoDB upsert.
func (r *MemoryAttemptRepository) SaveResult(ctx context.Context, result *entities.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.AttemptID] = *result
	return nil
}

// GetResult implements repositories.AttemptRepository.
func (r *MemoryAttemptRepository) GetResult(ctx context.Context, attemptID string) (*entities.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[attemptID]
	if !ok {
		return nil, repositories.ErrResultNotFound
	}
	return &result, nil
}

// MemoryFeedbackRepository is an in-memory FeedbackRepository.
// Safe for concurrent use.
type MemoryFeedbackRepository struct {
	mu      sync.RWMutex
	records map[string]entities.FeedbackRecord
}

var _ repositories.FeedbackRepository = (*MemoryFeedbackRepository)(nil)

// NewMemoryFeedbackRepository creates an empty in-memory feedback repository.
func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{
		records: make(map[string]entities.FeedbackRecord),
	}
}

// Create implements repositories.FeedbackRepository.
func (r *MemoryFeedbackRepository) Create(ctx context.Context, record *entities.FeedbackRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.AttemptID]; ok {
		return repositories.ErrFeedbackExists
	}
	r.records[record.AttemptID] = *record
	return nil
}

// GetByAttemptID implements repositories.FeedbackRepository.
func (r *MemoryFeedbackRepository) GetByAttemptID(ctx context.Context, attemptID string) (*entities.FeedbackRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[attemptID]
	if !ok {
		return nil, repositories.ErrFeedbackNotFound
	}
	return &record, nil
}

// MemoryUserRepository is an in-memory UserRepository.
// Safe for concurrent use.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

var _ repositories.UserRepository = (*MemoryUserRepository)(nil)

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]entities.User),
	}
}

// Create implements repositories.UserRepository.
func (r *MemoryUserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

// GetByID implements repositories.UserRepository.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail implements repositories.UserRepository.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}
