package repositories

import (
	"errors"
	"fmt"
)

// Storage sentinel errors.
var (
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrResultNotFound   = errors.New("analysis result not found")
	ErrFeedbackExists   = errors.New("feedback already submitted for attempt")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrUserNotFound     = errors.New("user not found")
)

// TranscriptionError is a fatal analysis failure: the speech provider was
// unreachable, rejected the audio, or returned malformed data. It is
// distinct from an empty transcription, which is a valid result.
type TranscriptionError struct {
	Reason string
	Err    error
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transcription failed: %s", e.Reason)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// CoachingUnavailableError is a non-fatal failure of the coaching model
// call. The orchestrator absorbs it and returns the composite result with
// the coaching fields absent.
type CoachingUnavailableError struct {
	Reason string
	Err    error
}

func (e *CoachingUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coaching unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("coaching unavailable: %s", e.Reason)
}

func (e *CoachingUnavailableError) Unwrap() error { return e.Err }
