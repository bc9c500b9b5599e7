package llm

import (
	"strings"
	"testing"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

func TestParseCoachingResponse(t *testing.T) {
	text := `{
		"clarity": 7,
		"rhythm": "choppy",
		"issues": [
			{"target_sound": "ʁ", "produced_sound": "r", "word": "bonjour", "suggestion": "gargle the r at the back of the throat"}
		],
		"top_drill": "rouge, rue, Paris",
		"encouragement": "Solid attempt."
	}`

	result, err := parseCoachingResponse(text)
	if err != nil {
		t.Fatalf("parseCoachingResponse returned error: %v", err)
	}

	if result.Clarity != 7 {
		t.Errorf("Expected clarity 7, got %d", result.Clarity)
	}
	if result.Rhythm != entities.RhythmChoppy {
		t.Errorf("Expected rhythm choppy, got %s", result.Rhythm)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(result.Issues))
	}
	if result.Issues[0].ID == "" {
		t.Error("Expected issue to get a generated ID")
	}
	if result.Issues[0].Word != "bonjour" {
		t.Errorf("Expected word bonjour, got %s", result.Issues[0].Word)
	}
	if result.Issues[0].CrossValidated {
		t.Error("Adapter must not set cross-validation flags")
	}
}

func TestParseCoachingResponseClampsClarity(t *testing.T) {
	result, err := parseCoachingResponse(`{"clarity": 15, "rhythm": "natural"}`)
	if err != nil {
		t.Fatalf("parseCoachingResponse returned error: %v", err)
	}
	if result.Clarity != 10 {
		t.Errorf("Expected clarity clamped to 10, got %d", result.Clarity)
	}

	result, err = parseCoachingResponse(`{"clarity": -3, "rhythm": "natural"}`)
	if err != nil {
		t.Fatalf("parseCoachingResponse returned error: %v", err)
	}
	if result.Clarity != 0 {
		t.Errorf("Expected clarity clamped to 0, got %d", result.Clarity)
	}
}

func TestParseCoachingResponseUnknownRhythm(t *testing.T) {
	result, err := parseCoachingResponse(`{"clarity": 5, "rhythm": "syncopated"}`)
	if err != nil {
		t.Fatalf("parseCoachingResponse returned error: %v", err)
	}
	if result.Rhythm != entities.RhythmUnknown {
		t.Errorf("Expected rhythm unknown, got %s", result.Rhythm)
	}
}

func TestParseCoachingResponseCodeFence(t *testing.T) {
	text := "```json\n{\"clarity\": 6, \"rhythm\": \"natural\"}\n```"
	result, err := parseCoachingResponse(text)
	if err != nil {
		t.Fatalf("parseCoachingResponse returned error: %v", err)
	}
	if result.Clarity != 6 {
		t.Errorf("Expected clarity 6, got %d", result.Clarity)
	}
}

func TestParseCoachingResponseSkipsEmptyIssues(t *testing.T) {
	text := `{
		"clarity": 8,
		"rhythm": "smooth",
		"issues": [
			{"target_sound": "", "produced_sound": "", "word": "bonjour"},
			{"target_sound": "u", "produced_sound": "y", "word": "beaucoup"}
		]
	}`
	result, err := parseCoachingResponse(text)
	if err != nil {
		t.Fatalf("parseCoachingResponse returned error: %v", err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("Expected the empty issue to be skipped, got %d issues", len(result.Issues))
	}
	if result.Issues[0].Word != "beaucoup" {
		t.Errorf("Expected surviving issue for beaucoup, got %s", result.Issues[0].Word)
	}
}

func TestParseCoachingResponseInvalidJSON(t *testing.T) {
	if _, err := parseCoachingResponse("I could not rate this attempt."); err == nil {
		t.Error("Expected error for non-JSON output")
	}
}

func TestBuildPromptIncludesAttemptFacts(t *testing.T) {
	prompt := buildPrompt(repositories.CoachingRequest{
		TargetText:    "bonjour",
		Transcription: "bonjour",
		Language:      "fr",
		Words: []entities.WordConfidence{
			{Word: "bonjour", Confidence: 0.93},
		},
	})

	for _, want := range []string{"bonjour", "0.93"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}
