package repositories

import (
	"context"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
)

// SpeechToText abstracts speech recognition services.
type SpeechToText interface {
	// Transcribe converts audio data to a transcription with per-word
	// confidence. An attempt with no detectable speech yields a
	// TranscriptionResult with empty text and no error; provider or
	// audio-format failures yield a *TranscriptionError.
	Transcribe(ctx context.Context, audioData []byte, config AudioConfig) (entities.TranscriptionResult, error)
}

// AudioConfig represents audio configuration for speech recognition.
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}
