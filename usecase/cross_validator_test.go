package usecase

import (
	"testing"

	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
)

func newTestValidator(t *testing.T) *CrossValidator {
	t.Helper()
	return NewCrossValidator(CrossValidatorConfig{}, zap.NewNop())
}

func transcriptionWith(words ...entities.WordConfidence) entities.TranscriptionResult {
	text := ""
	for i, w := range words {
		if i > 0 {
			text += " "
		}
		text += w.Word
	}
	return entities.TranscriptionResult{
		Text:       text,
		Words:      words,
		Confidence: 0.9,
	}
}

func TestHighConfidenceSuppressesIssue(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "issue-1", TargetSound: "ʁ", ProducedSound: "r", Word: "bonjour"},
		},
	}
	transcription := transcriptionWith(entities.WordConfidence{Word: "bonjour", Confidence: 0.95})

	verdict := validator.Validate(coaching, transcription)

	if len(verdict.SuppressedFlags) != 1 {
		t.Fatalf("Expected 1 suppressed flag, got %d", len(verdict.SuppressedFlags))
	}
	if verdict.SuppressedFlags[0].IssueID != "issue-1" {
		t.Errorf("Expected suppressed issue-1, got %s", verdict.SuppressedFlags[0].IssueID)
	}
	if verdict.SuppressedFlags[0].Reason == "" {
		t.Error("Expected a human-readable suppression reason")
	}
	if len(verdict.ConfirmedIssues) != 0 {
		t.Errorf("Expected no confirmed issues, got %v", verdict.ConfirmedIssues)
	}
	if coaching.Issues[0].CrossValidated {
		t.Error("Suppressed issue must not be marked cross-validated")
	}
}

func TestLowConfidenceConfirmsIssue(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "issue-1", TargetSound: "ʁ", ProducedSound: "r", Word: "bonjour"},
		},
	}
	transcription := transcriptionWith(entities.WordConfidence{Word: "bonjour", Confidence: 0.30})

	verdict := validator.Validate(coaching, transcription)

	if len(verdict.ConfirmedIssues) != 1 {
		t.Fatalf("Expected 1 confirmed issue, got %d", len(verdict.ConfirmedIssues))
	}
	if verdict.ConfirmedIssues[0] != "issue-1" {
		t.Errorf("Expected confirmed issue-1, got %s", verdict.ConfirmedIssues[0])
	}
	if len(verdict.SuppressedFlags) != 0 {
		t.Errorf("Expected no suppressed flags, got %d", len(verdict.SuppressedFlags))
	}
	if !coaching.Issues[0].CrossValidated {
		t.Error("Confirmed issue should be marked cross-validated")
	}
}

func TestMidConfidenceGetsWarning(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "issue-1", TargetSound: "u", ProducedSound: "y", Word: "beaucoup"},
		},
	}
	transcription := transcriptionWith(entities.WordConfidence{Word: "beaucoup", Confidence: 0.70})

	verdict := validator.Validate(coaching, transcription)

	if len(verdict.ConfirmedIssues) != 0 || len(verdict.SuppressedFlags) != 0 {
		t.Errorf("Mid-confidence issue should be neither confirmed nor suppressed, got %v / %v",
			verdict.ConfirmedIssues, verdict.SuppressedFlags)
	}
	if !coaching.Issues[0].ConfidenceWarning {
		t.Error("Expected confidence warning on the issue")
	}
	if coaching.Issues[0].CrossValidated {
		t.Error("Mid-confidence issue must not be marked cross-validated")
	}
}

func TestUnmatchableIssueIsUnverifiable(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "issue-1", TargetSound: "θ", ProducedSound: "s", Word: "efharisto"},
		},
	}
	transcription := transcriptionWith(entities.WordConfidence{Word: "bonjour", Confidence: 0.95})

	verdict := validator.Validate(coaching, transcription)

	if !coaching.Issues[0].Unverifiable {
		t.Error("Expected issue with no matching word to be unverifiable")
	}
	if len(verdict.ConfirmedIssues) != 0 || len(verdict.SuppressedFlags) != 0 {
		t.Error("Unverifiable issue must not appear in either verdict set")
	}
}

func TestVerdictSetsAreDisjoint(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "a", Word: "bonjour"},
			{ID: "b", Word: "merci"},
			{ID: "c", Word: "beaucoup"},
		},
	}
	transcription := transcriptionWith(
		entities.WordConfidence{Word: "bonjour", Confidence: 0.95},
		entities.WordConfidence{Word: "merci", Confidence: 0.40},
		entities.WordConfidence{Word: "beaucoup", Confidence: 0.70},
	)

	verdict := validator.Validate(coaching, transcription)
	if err := verdict.Validate(); err != nil {
		t.Fatalf("Verdict failed its own validation: %v", err)
	}

	suppressed := make(map[string]bool)
	for _, flag := range verdict.SuppressedFlags {
		suppressed[flag.IssueID] = true
	}
	for _, id := range verdict.ConfirmedIssues {
		if suppressed[id] {
			t.Errorf("Issue %s is both confirmed and suppressed", id)
		}
	}
	if len(verdict.ConfirmedIssues) != 1 || verdict.ConfirmedIssues[0] != "b" {
		t.Errorf("Expected only issue b confirmed, got %v", verdict.ConfirmedIssues)
	}
	if len(verdict.SuppressedFlags) != 1 || verdict.SuppressedFlags[0].IssueID != "a" {
		t.Errorf("Expected only issue a suppressed, got %v", verdict.SuppressedFlags)
	}
}

func TestFuzzyWordMatching(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			// Slight mismatch against the transcribed "bonjour".
			{ID: "issue-1", Word: "bonjor"},
		},
	}
	transcription := transcriptionWith(entities.WordConfidence{Word: "bonjour", Confidence: 0.95})

	verdict := validator.Validate(coaching, transcription)

	if coaching.Issues[0].Unverifiable {
		t.Error("Expected fuzzy match to locate the word")
	}
	if len(verdict.SuppressedFlags) != 1 {
		t.Errorf("Expected fuzzy-matched issue to be suppressed, got %d flags", len(verdict.SuppressedFlags))
	}
}

func TestIssueWithoutWordFallsBackToProducedSound(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "issue-1", ProducedSound: "mer"},
		},
	}
	transcription := transcriptionWith(entities.WordConfidence{Word: "merci", Confidence: 0.30})

	verdict := validator.Validate(coaching, transcription)

	if len(verdict.ConfirmedIssues) != 1 {
		t.Fatalf("Expected containment match on produced sound to confirm, got %v", verdict.ConfirmedIssues)
	}
}

func TestNoIssuesYieldsEmptyVerdict(t *testing.T) {
	validator := newTestValidator(t)
	coaching := &entities.CoachingResult{}
	transcription := transcriptionWith(entities.WordConfidence{Word: "bonjour", Confidence: 0.9})

	verdict := validator.Validate(coaching, transcription)

	if verdict.ConfirmedIssues == nil || verdict.SuppressedFlags == nil {
		t.Fatal("Verdict sets must be empty slices, not nil")
	}
	if len(verdict.ConfirmedIssues) != 0 || len(verdict.SuppressedFlags) != 0 {
		t.Error("Expected empty verdict for coaching with no issues")
	}
}

func TestCustomThresholds(t *testing.T) {
	validator := NewCrossValidator(CrossValidatorConfig{
		HighConfidence: 0.99,
		LowConfidence:  0.10,
	}, zap.NewNop())
	coaching := &entities.CoachingResult{
		Issues: []entities.SoundIssue{
			{ID: "issue-1", Word: "bonjour"},
		},
	}
	// 0.95 suppresses under the defaults but only warns here.
	transcription := transcriptionWith(entities.WordConfidence{Word: "bonjour", Confidence: 0.95})

	verdict := validator.Validate(coaching, transcription)

	if len(verdict.SuppressedFlags) != 0 {
		t.Errorf("Expected no suppression with raised threshold, got %d", len(verdict.SuppressedFlags))
	}
	if !coaching.Issues[0].ConfidenceWarning {
		t.Error("Expected confidence warning with custom thresholds")
	}
}
