package stt

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

const (
	defaultMaxRetries     = 2
	defaultInitialBackoff = 1 * time.Second
)

// GoogleSpeechConfig holds configuration for the Google speech adapter.
// Retries are bounded: an unreachable provider must surface as a typed
// error, never block the pipeline indefinitely.
type GoogleSpeechConfig struct {
	// MaxRetries is the number of retries after the first call
	// (default 2).
	MaxRetries int
	// InitialBackoff is the delay before the first retry; each further
	// retry doubles it (default 1s).
	InitialBackoff time.Duration
}

func (c GoogleSpeechConfig) withDefaults() GoogleSpeechConfig {
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.InitialBackoff == 0 {
		c.InitialBackoff = defaultInitialBackoff
	}
	return c
}

// GoogleSpeechToText implements SpeechToText using Google Cloud
// Speech-to-Text with word-level confidence enabled.
type GoogleSpeechToText struct {
	client *speech.Client
	config GoogleSpeechConfig
	logger *zap.Logger
}

var _ repositories.SpeechToText = (*GoogleSpeechToText)(nil)

// NewGoogleSpeechToText creates the adapter. Credentials come from the
// standard Google application-default mechanism.
func NewGoogleSpeechToText(ctx context.Context, config GoogleSpeechConfig, logger *zap.Logger) (*GoogleSpeechToText, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleSpeechToText{
		client: client,
		config: config.withDefaults(),
		logger: logger,
	}, nil
}

// Close releases the underlying client.
func (g *GoogleSpeechToText) Close() error {
	return g.client.Close()
}

// Transcribe converts audio data to a transcription with per-word
// confidence. A response with no recognized speech returns an empty
// TranscriptionResult and no error; it is the caller's short-circuit
// signal, not a failure.
func (g *GoogleSpeechToText) Transcribe(ctx context.Context, audioData []byte, config repositories.AudioConfig) (entities.TranscriptionResult, error) {
	encoding, err := audioEncoding(config.Encoding)
	if err != nil {
		return entities.TranscriptionResult{}, &repositories.TranscriptionError{
			Reason: "unsupported audio encoding",
			Err:    err,
		}
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:             encoding,
			SampleRateHertz:      int32(config.SampleRate),
			LanguageCode:         config.Language,
			EnableWordConfidence: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	}

	resp, err := g.recognizeWithRetry(ctx, req)
	if err != nil {
		return entities.TranscriptionResult{}, &repositories.TranscriptionError{
			Reason: "speech provider call failed",
			Err:    err,
		}
	}

	return resultFromResponse(resp), nil
}

// recognizeWithRetry issues the recognize call with bounded exponential
// backoff. Exhaustion surfaces the last error; nothing is swallowed.
func (g *GoogleSpeechToText) recognizeWithRetry(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	backoff := g.config.InitialBackoff
	var lastErr error
	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		resp, err := g.client.Recognize(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < g.config.MaxRetries {
			g.logger.Warn("recognize call failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}
	return nil, lastErr
}

// resultFromResponse flattens the provider response into a
// TranscriptionResult. Per-word confidences are taken from the best
// alternative of each result, in phrase order.
func resultFromResponse(resp *speechpb.RecognizeResponse) entities.TranscriptionResult {
	result := entities.TranscriptionResult{Words: []entities.WordConfidence{}}

	var parts []string
	var confidenceSum float64
	var alternatives int
	for _, r := range resp.GetResults() {
		if len(r.GetAlternatives()) == 0 {
			continue
		}
		best := r.GetAlternatives()[0]
		if best.GetTranscript() == "" {
			continue
		}
		parts = append(parts, best.GetTranscript())
		confidenceSum += float64(best.GetConfidence())
		alternatives++
		for _, w := range best.GetWords() {
			result.Words = append(result.Words, entities.WordConfidence{
				Word:       w.GetWord(),
				Confidence: float64(w.GetConfidence()),
			})
		}
	}

	result.Text = strings.TrimSpace(strings.Join(parts, " "))
	if result.Text == "" {
		// No speech detected: per-word confidences are never
		// fabricated for an empty transcription.
		return entities.TranscriptionResult{Words: []entities.WordConfidence{}}
	}
	if alternatives > 0 {
		result.Confidence = confidenceSum / float64(alternatives)
	}
	return result
}

// audioEncoding converts string encoding to the Google Speech API enum.
func audioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch encoding {
	case "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "AMR":
		return speechpb.RecognitionConfig_AMR, nil
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
