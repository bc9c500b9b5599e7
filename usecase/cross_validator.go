package usecase

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
)

const (
	defaultHighConfidence = 0.85
	defaultLowConfidence  = 0.60
	defaultWordSimilarity = 0.80
)

// CrossValidatorConfig holds the tunable thresholds for reconciling
// coaching issues against recognizer confidence. The defaults are starting
// points meant to be tuned per deployment, not fixed constants.
type CrossValidatorConfig struct {
	// HighConfidence is the recognizer confidence at or above which a
	// flagged word counts as clearly heard, suppressing the issue.
	HighConfidence float64
	// LowConfidence is the recognizer confidence below which a flagged
	// word counts as genuinely problematic, confirming the issue.
	LowConfidence float64
	// WordSimilarity is the minimum Jaro-Winkler score for fuzzy-matching
	// an issue's word context against the transcribed words.
	WordSimilarity float64
}

func (c CrossValidatorConfig) withDefaults() CrossValidatorConfig {
	if c.HighConfidence == 0 {
		c.HighConfidence = defaultHighConfidence
	}
	if c.LowConfidence == 0 {
		c.LowConfidence = defaultLowConfidence
	}
	if c.WordSimilarity == 0 {
		c.WordSimilarity = defaultWordSimilarity
	}
	return c
}

// CrossValidator reconciles the coaching model's qualitative sound issues
// with the recognizer's quantitative per-word confidence, cutting down on
// false positives (model invents a problem the recognizer heard clearly)
// and surfacing genuine ones.
type CrossValidator struct {
	config CrossValidatorConfig
	logger *zap.Logger
}

// NewCrossValidator creates a cross-validator with the given thresholds.
// Zero-valued thresholds fall back to the defaults (0.85 / 0.60 / 0.80).
func NewCrossValidator(config CrossValidatorConfig, logger *zap.Logger) *CrossValidator {
	return &CrossValidator{
		config: config.withDefaults(),
		logger: logger,
	}
}

// Validate classifies each sound issue in coaching against the per-word
// confidences in transcription. Confirmed issues get CrossValidated set;
// suppressed ones are listed with a reason; issues between the thresholds
// get a confidence warning; issues whose word cannot be located in the
// transcription are marked unverifiable. Issues are updated in place.
func (v *CrossValidator) Validate(coaching *entities.CoachingResult, transcription entities.TranscriptionResult) *entities.CrossValidationVerdict {
	verdict := &entities.CrossValidationVerdict{
		ConfirmedIssues: []string{},
		SuppressedFlags: []entities.SuppressedFlag{},
	}

	for i := range coaching.Issues {
		issue := &coaching.Issues[i]

		word, confidence, found := v.matchWord(issue, transcription.Words)
		if !found {
			issue.Unverifiable = true
			v.logger.Debug("sound issue has no matching transcribed word",
				zap.String("issueID", issue.ID),
				zap.String("producedSound", issue.ProducedSound))
			continue
		}

		switch {
		case confidence >= v.config.HighConfidence:
			verdict.SuppressedFlags = append(verdict.SuppressedFlags, entities.SuppressedFlag{
				IssueID: issue.ID,
				Reason:  fmt.Sprintf("recognizer heard %q clearly (confidence %.2f)", word, confidence),
			})
		case confidence < v.config.LowConfidence:
			issue.CrossValidated = true
			verdict.ConfirmedIssues = append(verdict.ConfirmedIssues, issue.ID)
		default:
			// Between the thresholds the signal is ambiguous; surface
			// the issue as-is with a warning rather than forcing it
			// into either bucket.
			issue.ConfidenceWarning = true
		}
	}

	return verdict
}

// matchWord locates the transcribed word an issue refers to. Exact and
// containment matches win outright; otherwise the best Jaro-Winkler match
// above the similarity threshold is used.
func (v *CrossValidator) matchWord(issue *entities.SoundIssue, words []entities.WordConfidence) (string, float64, bool) {
	candidate := strings.ToLower(strings.TrimSpace(issue.Word))
	if candidate == "" {
		candidate = strings.ToLower(strings.TrimSpace(issue.ProducedSound))
	}
	if candidate == "" {
		return "", 0, false
	}

	bestScore := 0.0
	bestIdx := -1
	for i, w := range words {
		word := strings.ToLower(w.Word)
		if word == candidate || strings.Contains(word, candidate) || strings.Contains(candidate, word) {
			return w.Word, w.Confidence, true
		}
		if score := matchr.JaroWinkler(word, candidate, false); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= v.config.WordSimilarity {
		return words[bestIdx].Word, words[bestIdx].Confidence, true
	}
	return "", 0, false
}
