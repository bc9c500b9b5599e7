package llm

import (
	"context"

	"github.com/google/uuid"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

// MockCoach is a scripted stand-in for the Gemini adapter, used in dev
// mode and tests.
type MockCoach struct {
	// Result, when set, is returned as-is (a copy, so callers can
	// mutate freely).
	Result *entities.CoachingResult
	// Err, when set, is returned instead of a result.
	Err error
}

var _ repositories.CoachingModel = (*MockCoach)(nil)

// NewMockCoach creates a mock that returns a plausible, issue-free result.
func NewMockCoach() *MockCoach {
	return &MockCoach{}
}

// Coach implements repositories.CoachingModel.
func (m *MockCoach) Coach(ctx context.Context, req repositories.CoachingRequest) (*entities.CoachingResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		copied := *m.Result
		copied.Issues = append([]entities.SoundIssue{}, m.Result.Issues...)
		return &copied, nil
	}
	return &entities.CoachingResult{
		Clarity:       8,
		Rhythm:        entities.RhythmNatural,
		Issues:        []entities.SoundIssue{},
		Encouragement: "Nice work, that was very close to the target.",
	}, nil
}

// IssueWithID builds a sound issue for tests and scripted mocks.
func IssueWithID(word, targetSound, producedSound string) entities.SoundIssue {
	return entities.SoundIssue{
		ID:            uuid.NewString(),
		Word:          word,
		TargetSound:   targetSound,
		ProducedSound: producedSound,
	}
}
