package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Attempt represents one user's recorded pronunciation of one target phrase.
// An Attempt is immutable once created; analysis results are attached to it
// under its ID, never written back into it.
type Attempt struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	TargetText string    `json:"target_text" bson:"target_text"`
	Language   string    `json:"language" bson:"language"`
	AudioRef   string    `json:"audio_ref" bson:"audio_ref"`
	DurationMs int       `json:"duration_ms" bson:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// NewAttempt creates a new attempt for a user and target phrase.
func NewAttempt(userID, targetText, language, audioRef string, durationMs int) *Attempt {
	return &Attempt{
		ID:         uuid.NewString(),
		UserID:     userID,
		TargetText: targetText,
		Language:   language,
		AudioRef:   audioRef,
		DurationMs: durationMs,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate validates the attempt data.
func (a *Attempt) Validate() error {
	if a.UserID == "" {
		return errors.New("user_id is required")
	}
	if a.TargetText == "" {
		return errors.New("target_text is required")
	}
	if a.Language == "" {
		return errors.New("language is required")
	}
	if a.DurationMs < 0 {
		return errors.New("duration_ms cannot be negative")
	}
	return nil
}
