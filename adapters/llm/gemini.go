package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

const (
	defaultModel          = "gemini-2.0-flash"
	defaultTemperature    = 0.4
	defaultMaxTokens      = 1024
	defaultTimeoutSeconds = 20
	defaultMaxRetries     = 2
)

// GeminiConfig holds configuration for the Gemini coaching adapter.
// Required: APIKey. Everything else has defaults.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	TimeoutSeconds  int
	MaxRetries      int
}

// ValidateGeminiConfig validates the GeminiConfig.
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("Google AI API key is required")
	}
	if config.Temperature != 0 && (config.Temperature < 0 || config.Temperature > 1) {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", config.Temperature)
	}
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("max retries must be positive, got %d", config.MaxRetries)
	}
	return nil
}

// GeminiCoach implements CoachingModel using Google's Gemini API.
type GeminiCoach struct {
	client          *genai.Client
	logger          *zap.Logger
	model           string
	temperature     float32
	maxOutputTokens int
	timeoutSeconds  int
	maxRetries      int
}

var _ repositories.CoachingModel = (*GeminiCoach)(nil)

// NewGeminiCoach creates a new Gemini coaching adapter.
func NewGeminiCoach(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiCoach, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}
	temperature := config.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = defaultMaxTokens
	}
	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	maxRetries := config.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	return &GeminiCoach{
		client:          client,
		logger:          logger,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		timeoutSeconds:  timeoutSeconds,
		maxRetries:      maxRetries,
	}, nil
}

// Coach produces qualitative feedback for one attempt. All failures,
// including retry exhaustion and unparseable model output, surface as
// *CoachingUnavailableError so the orchestrator can degrade gracefully.
func (g *GeminiCoach) Coach(ctx context.Context, req repositories.CoachingRequest) (*entities.CoachingResult, error) {
	prompt := buildPrompt(req)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		MaxOutputTokens:  int32(g.maxOutputTokens),
		ResponseMIMEType: "application/json",
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.timeoutSeconds)*time.Second)
	defer cancel()

	var response *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		response, err = g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if attempt < g.maxRetries {
			g.logger.Warn("coaching call failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}
	if err != nil {
		return nil, &repositories.CoachingUnavailableError{Reason: "model call failed", Err: err}
	}

	text := responseText(response)
	if text == "" {
		return nil, &repositories.CoachingUnavailableError{Reason: "model returned no content"}
	}

	result, err := parseCoachingResponse(text)
	if err != nil {
		g.logger.Warn("unparseable coaching response",
			zap.String("preview", text[:min(120, len(text))]),
			zap.Error(err))
		return nil, &repositories.CoachingUnavailableError{Reason: "unparseable model output", Err: err}
	}
	return result, nil
}

// buildPrompt renders the language template plus the attempt facts the
// model needs: target, transcription, and per-word confidence.
func buildPrompt(req repositories.CoachingRequest) string {
	var b strings.Builder
	b.WriteString(templateOrDefault(req.Language))
	b.WriteString("\n\nTarget phrase: ")
	b.WriteString(req.TargetText)
	b.WriteString("\nTranscription of the learner: ")
	b.WriteString(req.Transcription)
	b.WriteString("\nPer-word recognizer confidence:\n")
	for _, w := range req.Words {
		fmt.Fprintf(&b, "  %s: %.2f\n", w.Word, w.Confidence)
	}
	return b.String()
}

func responseText(response *genai.GenerateContentResponse) string {
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}

// coachingPayload mirrors the JSON shape the prompt asks for. Every field
// is optional on the wire; validation happens once here, at the adapter
// boundary, not defensively at every render site.
type coachingPayload struct {
	Clarity       *int           `json:"clarity"`
	Rhythm        string         `json:"rhythm"`
	Issues        []issuePayload `json:"issues"`
	TopDrill      string         `json:"top_drill"`
	Encouragement string         `json:"encouragement"`
}

type issuePayload struct {
	TargetSound   string `json:"target_sound"`
	ProducedSound string `json:"produced_sound"`
	Word          string `json:"word"`
	Example       string `json:"example"`
	Suggestion    string `json:"suggestion"`
}

// parseCoachingResponse validates the raw model output into a
// CoachingResult: clarity clamped to [0,10], unrecognized rhythm mapped to
// unknown, and a fresh ID assigned to every issue.
func parseCoachingResponse(text string) (*entities.CoachingResult, error) {
	payload := coachingPayload{}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &payload); err != nil {
		return nil, fmt.Errorf("decode coaching JSON: %w", err)
	}

	clarity := 0
	if payload.Clarity != nil {
		clarity = *payload.Clarity
	}
	if clarity < 0 {
		clarity = 0
	}
	if clarity > 10 {
		clarity = 10
	}

	result := &entities.CoachingResult{
		Clarity:       clarity,
		Rhythm:        entities.ParseRhythm(payload.Rhythm),
		Issues:        []entities.SoundIssue{},
		TopDrill:      payload.TopDrill,
		Encouragement: payload.Encouragement,
	}
	for _, issue := range payload.Issues {
		if issue.TargetSound == "" && issue.ProducedSound == "" {
			continue
		}
		result.Issues = append(result.Issues, entities.SoundIssue{
			ID:            uuid.NewString(),
			TargetSound:   issue.TargetSound,
			ProducedSound: issue.ProducedSound,
			Word:          issue.Word,
			Example:       issue.Example,
			Suggestion:    issue.Suggestion,
		})
	}
	return result, nil
}

// stripCodeFence unwraps ```json fences some model revisions still emit
// even when asked for raw JSON.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
