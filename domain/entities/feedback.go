package entities

import (
	"errors"
	"time"
)

// FeedbackRecord is a user's rating of how useful one attempt's analysis
// was, rated separately for the transcription and coaching subsystems.
// At most one record exists per attempt; records are append-only.
type FeedbackRecord struct {
	AttemptID      string    `json:"attempt_id" bson:"_id"`
	UserID         string    `json:"user_id" bson:"user_id"`
	STTRating      int       `json:"stt_rating" bson:"stt_rating"`
	CoachingRating int       `json:"coaching_rating" bson:"coaching_rating"`
	Comment        string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// NewFeedbackRecord creates a feedback record for an attempt.
func NewFeedbackRecord(attemptID, userID string, sttRating, coachingRating int, comment string) *FeedbackRecord {
	return &FeedbackRecord{
		AttemptID:      attemptID,
		UserID:         userID,
		STTRating:      sttRating,
		CoachingRating: coachingRating,
		Comment:        comment,
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate validates the feedback data.
func (f *FeedbackRecord) Validate() error {
	if f.AttemptID == "" {
		return errors.New("attempt_id is required")
	}
	if f.UserID == "" {
		return errors.New("user_id is required")
	}
	if f.STTRating < 1 || f.STTRating > 5 {
		return errors.New("stt_rating must be between 1 and 5")
	}
	if f.CoachingRating < 1 || f.CoachingRating > 5 {
		return errors.New("coaching_rating must be between 1 and 5")
	}
	return nil
}
