package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

func TestAttemptRoundTrip(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	attempt := entities.NewAttempt("user-1", "bonjour", "fr", "inline", 1200)
	if err := repo.CreateAttempt(ctx, attempt); err != nil {
		t.Fatalf("CreateAttempt returned error: %v", err)
	}

	loaded, err := repo.GetAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("GetAttempt returned error: %v", err)
	}
	if loaded.TargetText != "bonjour" {
		t.Errorf("Expected target text bonjour, got %s", loaded.TargetText)
	}

	if _, err := repo.GetAttempt(ctx, "missing"); !errors.Is(err, repositories.ErrAttemptNotFound) {
		t.Errorf("Expected ErrAttemptNotFound, got %v", err)
	}
}

func TestSaveResultIsIdempotent(t *testing.T) {
	repo := NewMemoryAttemptRepository()
	ctx := context.Background()

	first := &entities.AnalysisResult{
		AttemptID: "attempt-1",
		Status:    entities.AnalysisStatusComplete,
	}
	if err := repo.SaveResult(ctx, first); err != nil {
		t.Fatalf("SaveResult returned error: %v", err)
	}

	second := &entities.AnalysisResult{
		AttemptID: "attempt-1",
		Status:    entities.AnalysisStatusNoSpeech,
	}
	if err := repo.SaveResult(ctx, second); err != nil {
		t.Fatalf("Second SaveResult returned error: %v", err)
	}

	stored, err := repo.GetResult(ctx, "attempt-1")
	if err != nil {
		t.Fatalf("GetResult returned error: %v", err)
	}
	if stored.Status != entities.AnalysisStatusNoSpeech {
		t.Errorf("Expected second save to replace the record, got status %s", stored.Status)
	}

	if _, err := repo.GetResult(ctx, "missing"); !errors.Is(err, repositories.ErrResultNotFound) {
		t.Errorf("Expected ErrResultNotFound, got %v", err)
	}
}

func TestFeedbackRejectsDuplicates(t *testing.T) {
	repo := NewMemoryFeedbackRepository()
	ctx := context.Background()

	record := entities.NewFeedbackRecord("attempt-1", "user-1", 4, 3, "")
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	dup := entities.NewFeedbackRecord("attempt-1", "user-1", 2, 2, "changed my mind")
	if err := repo.Create(ctx, dup); !errors.Is(err, repositories.ErrFeedbackExists) {
		t.Errorf("Expected ErrFeedbackExists, got %v", err)
	}

	stored, err := repo.GetByAttemptID(ctx, "attempt-1")
	if err != nil {
		t.Fatalf("GetByAttemptID returned error: %v", err)
	}
	if stored.STTRating != 4 {
		t.Errorf("Duplicate must not overwrite the original, got rating %d", stored.STTRating)
	}

	if _, err := repo.GetByAttemptID(ctx, "missing"); !errors.Is(err, repositories.ErrFeedbackNotFound) {
		t.Errorf("Expected ErrFeedbackNotFound, got %v", err)
	}
}

func TestUserLookupByEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &entities.User{
		ID:           "user-1",
		Email:        "learner@example.com",
		Name:         "Learner",
		PasswordHash: []byte("hash"),
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	loaded, err := repo.GetByEmail(ctx, "learner@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if loaded.ID != "user-1" {
		t.Errorf("Expected user-1, got %s", loaded.ID)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, repositories.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
