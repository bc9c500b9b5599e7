package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
	"github.com/coreyprator/super-flashcards-server/internal/align"
	"github.com/coreyprator/super-flashcards-server/internal/phoneme"
)

// AnalysisService drives one pronunciation attempt through the full
// analysis pipeline: transcription, phonemization, alignment, coaching and
// cross-validation, ending with exactly one persisted composite result.
type AnalysisService struct {
	speechToText repositories.SpeechToText
	coach        repositories.CoachingModel
	validator    *CrossValidator
	attempts     repositories.AttemptRepository
	logger       *zap.Logger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	stt repositories.SpeechToText,
	coach repositories.CoachingModel,
	validator *CrossValidator,
	attempts repositories.AttemptRepository,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		speechToText: stt,
		coach:        coach,
		validator:    validator,
		attempts:     attempts,
		logger:       logger,
	}
}

// Analyze processes one attempt end to end and persists the composite
// result keyed by the attempt ID.
//
// Transcription and phonemization failures are fatal and nothing is
// persisted. An empty transcription is not a failure: the attempt completes
// with a no-speech result whose alignment marks every target phoneme as
// deleted. A coaching failure is absorbed; the transcription and alignment
// parts of the result remain valid and are persisted with a note.
func (s *AnalysisService) Analyze(ctx context.Context, attempt *entities.Attempt, audio []byte, config repositories.AudioConfig) (*entities.AnalysisResult, error) {
	transcription, err := s.speechToText.Transcribe(ctx, audio, config)
	if err != nil {
		var terr *repositories.TranscriptionError
		if !errors.As(err, &terr) {
			err = &repositories.TranscriptionError{Reason: "speech provider call failed", Err: err}
		}
		return nil, err
	}

	targetPhonemes, err := phoneme.Phonemize(attempt.TargetText, attempt.Language)
	if err != nil {
		return nil, err
	}

	result := &entities.AnalysisResult{
		AttemptID:      attempt.ID,
		Status:         entities.AnalysisStatusComplete,
		Transcription:  transcription,
		TargetPhonemes: targetPhonemes.Strings(),
		SpokenPhonemes: []string{},
		CreatedAt:      time.Now().UTC(),
	}

	if transcription.Text == "" {
		// No speech detected. This is a valid outcome, distinct from a
		// transcription failure: the alignment shows every target
		// phoneme as deleted and there is nothing for the coach to
		// work with.
		s.logger.Info("no speech detected in attempt",
			zap.String("attemptID", attempt.ID))
		result.Status = entities.AnalysisStatusNoSpeech
		result.Alignment, err = align.Sequences(targetPhonemes, nil)
		if err != nil {
			return nil, err
		}
		if err := s.persist(ctx, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	spokenPhonemes, err := phoneme.Phonemize(transcription.Text, attempt.Language)
	if err != nil {
		return nil, err
	}
	result.SpokenPhonemes = spokenPhonemes.Strings()

	result.Alignment, err = align.Sequences(targetPhonemes, spokenPhonemes)
	if err != nil {
		return nil, err
	}

	coaching, err := s.coach.Coach(ctx, repositories.CoachingRequest{
		TargetText:    attempt.TargetText,
		Transcription: transcription.Text,
		Words:         transcription.Words,
		Language:      attempt.Language,
	})
	if err != nil {
		// Non-fatal: the transcription and alignment parts stand on
		// their own. Provider error text stays out of the note.
		s.logger.Warn("coaching unavailable for attempt",
			zap.String("attemptID", attempt.ID),
			zap.Error(err))
		result.CoachingNote = "pronunciation coaching was unavailable for this attempt"
	} else {
		result.Coaching = coaching
		result.Verdict = s.validator.Validate(coaching, transcription)
	}

	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("attempt analysis complete",
		zap.String("attemptID", attempt.ID),
		zap.String("status", string(result.Status)),
		zap.Int("phonemeMatches", result.Alignment.Matches()),
		zap.Int("editCost", result.Alignment.EditCost),
		zap.Bool("coached", result.Coaching != nil))

	return result, nil
}

// persist writes the composite result exactly once. The write runs on a
// cancellation-detached context: once the pipeline has a valid result,
// request cancellation must not leave a half-written record behind.
func (s *AnalysisService) persist(ctx context.Context, result *entities.AnalysisResult) error {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.attempts.SaveResult(persistCtx, result); err != nil {
		return fmt.Errorf("failed to persist analysis result: %w", err)
	}
	return nil
}
