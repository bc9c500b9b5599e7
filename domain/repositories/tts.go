package repositories

import "context"

// TextToSpeech abstracts synthesis of reference pronunciation audio.
type TextToSpeech interface {
	ConvertTextToSpeech(ctx context.Context, text string, language string) (<-chan []byte, error)
}
