package stt

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

// MockSpeechToText is a scripted stand-in for the Google adapter, used in
// dev mode and tests. It returns the configured transcription regardless of
// the audio content, except that empty audio produces an empty (no speech)
// result.
type MockSpeechToText struct {
	logger *zap.Logger

	// Transcription is returned for any non-empty audio payload.
	Transcription string
	// WordConfidence is applied to every word of Transcription.
	WordConfidence float64
	// Err, when set, is returned instead of a result.
	Err error
}

var _ repositories.SpeechToText = (*MockSpeechToText)(nil)

// NewMockSpeechToText creates a mock with a fixed transcription.
func NewMockSpeechToText(transcription string, wordConfidence float64, logger *zap.Logger) *MockSpeechToText {
	return &MockSpeechToText{
		logger:         logger,
		Transcription:  transcription,
		WordConfidence: wordConfidence,
	}
}

// Transcribe implements repositories.SpeechToText.
func (m *MockSpeechToText) Transcribe(ctx context.Context, audioData []byte, config repositories.AudioConfig) (entities.TranscriptionResult, error) {
	if m.Err != nil {
		return entities.TranscriptionResult{}, m.Err
	}

	m.logger.Debug("mock transcription",
		zap.Int("audioSize", len(audioData)),
		zap.String("language", config.Language))

	if len(audioData) == 0 || m.Transcription == "" {
		return entities.TranscriptionResult{Words: []entities.WordConfidence{}}, nil
	}

	words := []entities.WordConfidence{}
	for _, w := range strings.Fields(m.Transcription) {
		words = append(words, entities.WordConfidence{Word: w, Confidence: m.WordConfidence})
	}
	return entities.TranscriptionResult{
		Text:       m.Transcription,
		Words:      words,
		Confidence: m.WordConfidence,
	}, nil
}
