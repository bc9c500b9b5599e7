package repositories

import (
	"context"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
)

// CoachingRequest carries everything the coaching model needs to judge one
// pronunciation attempt.
type CoachingRequest struct {
	TargetText    string                    `json:"target_text"`
	Transcription string                    `json:"transcription"`
	Words         []entities.WordConfidence `json:"words"`
	Language      string                    `json:"language"`
}

// CoachingModel abstracts the generative model that produces qualitative
// pronunciation feedback.
type CoachingModel interface {
	// Coach produces feedback for one attempt. Failures surface as
	// *CoachingUnavailableError; the caller treats them as non-fatal.
	Coach(ctx context.Context, req CoachingRequest) (*entities.CoachingResult, error)
}

// PromptCatalog is a read-only, language-keyed lookup of the instructional
// templates used to build coaching model requests.
type PromptCatalog interface {
	Template(language string) (string, error)
}
