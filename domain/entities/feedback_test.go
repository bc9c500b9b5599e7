package entities

import (
	"testing"
)

func TestFeedbackCreation(t *testing.T) {
	record := NewFeedbackRecord("attempt-1", "user-1", 4, 5, "the coach caught my rolled r")

	if record.AttemptID != "attempt-1" {
		t.Errorf("Expected attempt ID attempt-1, got %s", record.AttemptID)
	}
	if record.STTRating != 4 || record.CoachingRating != 5 {
		t.Errorf("Expected ratings 4/5, got %d/%d", record.STTRating, record.CoachingRating)
	}
	if record.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestFeedbackValidation(t *testing.T) {
	record := NewFeedbackRecord("attempt-1", "user-1", 3, 3, "")
	if err := record.Validate(); err != nil {
		t.Errorf("Valid feedback should not have validation errors, got: %v", err)
	}

	record = NewFeedbackRecord("", "user-1", 3, 3, "")
	if err := record.Validate(); err == nil {
		t.Error("Feedback with empty attempt ID should have validation error")
	}

	record = NewFeedbackRecord("attempt-1", "", 3, 3, "")
	if err := record.Validate(); err == nil {
		t.Error("Feedback with empty user ID should have validation error")
	}

	for _, rating := range []int{0, 6, -1} {
		record = NewFeedbackRecord("attempt-1", "user-1", rating, 3, "")
		if err := record.Validate(); err == nil {
			t.Errorf("STT rating %d should have validation error", rating)
		}
		record = NewFeedbackRecord("attempt-1", "user-1", 3, rating, "")
		if err := record.Validate(); err == nil {
			t.Errorf("Coaching rating %d should have validation error", rating)
		}
	}
}
