package entities

import (
	"errors"
	"time"
)

// WordConfidence is the recognizer's confidence for a single transcribed word.
type WordConfidence struct {
	Word       string  `json:"word" bson:"word"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// TranscriptionResult is the speech-to-text output for one attempt.
// When Text is empty the Words slice is empty as well; per-word confidences
// are never fabricated for speech that was not heard.
type TranscriptionResult struct {
	Text       string           `json:"text" bson:"text"`
	Words      []WordConfidence `json:"words" bson:"words"`
	Confidence float64          `json:"confidence" bson:"confidence"`
}

// Validate validates the transcription invariants.
func (t *TranscriptionResult) Validate() error {
	if t.Text == "" && len(t.Words) > 0 {
		return errors.New("empty transcription cannot carry word confidences")
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return errors.New("confidence must be within [0,1]")
	}
	return nil
}

// AlignmentOp tags a single aligned phoneme pair.
type AlignmentOp string

const (
	OpMatch        AlignmentOp = "match"
	OpSubstitution AlignmentOp = "substitution"
	OpDeletion     AlignmentOp = "deletion"
	OpInsertion    AlignmentOp = "insertion"
)

// AlignedPair pairs one target phoneme with one spoken phoneme. An empty
// Target means the spoken phoneme was inserted; an empty Spoken means the
// target phoneme was deleted.
type AlignedPair struct {
	Target string      `json:"target" bson:"target"`
	Spoken string      `json:"spoken" bson:"spoken"`
	Op     AlignmentOp `json:"op" bson:"op"`
}

// AlignmentResult is the full pairing of target and spoken phoneme
// sequences, emitted in beginning-to-end order of the phrase.
type AlignmentResult struct {
	Pairs    []AlignedPair `json:"pairs" bson:"pairs"`
	EditCost int           `json:"edit_cost" bson:"edit_cost"`
}

// Matches reports how many pairs are exact matches.
func (r *AlignmentResult) Matches() int {
	n := 0
	for _, p := range r.Pairs {
		if p.Op == OpMatch {
			n++
		}
	}
	return n
}

// Rhythm classifies the pacing of the spoken attempt.
type Rhythm string

const (
	RhythmSmooth   Rhythm = "smooth"
	RhythmNatural  Rhythm = "natural"
	RhythmChoppy   Rhythm = "choppy"
	RhythmStaccato Rhythm = "staccato"
	RhythmHesitant Rhythm = "hesitant"
	RhythmUnknown  Rhythm = "unknown"
)

// ParseRhythm maps a model-produced rhythm string onto the known vocabulary.
// Unrecognized values map to RhythmUnknown rather than being rejected, so a
// model vocabulary change never breaks parsing.
func ParseRhythm(s string) Rhythm {
	switch Rhythm(s) {
	case RhythmSmooth, RhythmNatural, RhythmChoppy, RhythmStaccato, RhythmHesitant:
		return Rhythm(s)
	default:
		return RhythmUnknown
	}
}

// SoundIssue is one pronunciation problem the coaching model flagged.
// CrossValidated, ConfidenceWarning and Unverifiable are set by the
// cross-validator, never by the coaching adapter.
type SoundIssue struct {
	ID                string `json:"id" bson:"id"`
	TargetSound       string `json:"target_sound" bson:"target_sound"`
	ProducedSound     string `json:"produced_sound" bson:"produced_sound"`
	Example           string `json:"example,omitempty" bson:"example,omitempty"`
	Suggestion        string `json:"suggestion,omitempty" bson:"suggestion,omitempty"`
	Word              string `json:"word,omitempty" bson:"word,omitempty"`
	CrossValidated    bool   `json:"cross_validated" bson:"cross_validated"`
	ConfidenceWarning bool   `json:"confidence_warning,omitempty" bson:"confidence_warning,omitempty"`
	Unverifiable      bool   `json:"unverifiable,omitempty" bson:"unverifiable,omitempty"`
}

// CoachingResult is the qualitative feedback produced by the coaching model.
type CoachingResult struct {
	Clarity       int          `json:"clarity" bson:"clarity"`
	Rhythm        Rhythm       `json:"rhythm" bson:"rhythm"`
	Issues        []SoundIssue `json:"issues" bson:"issues"`
	TopDrill      string       `json:"top_drill,omitempty" bson:"top_drill,omitempty"`
	Encouragement string       `json:"encouragement,omitempty" bson:"encouragement,omitempty"`
}

// SuppressedFlag records an issue the cross-validator suppressed, with a
// short reason the UI can surface.
type SuppressedFlag struct {
	IssueID string `json:"issue_id" bson:"issue_id"`
	Reason  string `json:"reason" bson:"reason"`
}

// CrossValidationVerdict reconciles coaching issues against recognizer
// confidence. An issue ID appears in at most one of the two sets.
type CrossValidationVerdict struct {
	ConfirmedIssues []string         `json:"confirmed_issues" bson:"confirmed_issues"`
	SuppressedFlags []SuppressedFlag `json:"suppressed_flags" bson:"suppressed_flags"`
}

// Validate checks that no issue is both confirmed and suppressed.
func (v *CrossValidationVerdict) Validate() error {
	confirmed := make(map[string]struct{}, len(v.ConfirmedIssues))
	for _, id := range v.ConfirmedIssues {
		confirmed[id] = struct{}{}
	}
	for _, f := range v.SuppressedFlags {
		if _, ok := confirmed[f.IssueID]; ok {
			return errors.New("issue cannot be both confirmed and suppressed: " + f.IssueID)
		}
	}
	return nil
}

// AnalysisStatus distinguishes a fully analyzed attempt from the valid
// "no speech detected" outcome.
type AnalysisStatus string

const (
	AnalysisStatusComplete AnalysisStatus = "complete"
	AnalysisStatusNoSpeech AnalysisStatus = "no_speech"
)

// AnalysisResult is the composite result of one attempt's analysis.
// Coaching and Verdict are nil when the coaching layer was skipped or
// unavailable; the transcription and alignment parts stay valid on their own.
type AnalysisResult struct {
	AttemptID      string                  `json:"attempt_id" bson:"_id"`
	Status         AnalysisStatus          `json:"status" bson:"status"`
	Transcription  TranscriptionResult     `json:"transcription" bson:"transcription"`
	TargetPhonemes []string                `json:"target_phonemes" bson:"target_phonemes"`
	SpokenPhonemes []string                `json:"spoken_phonemes" bson:"spoken_phonemes"`
	Alignment      AlignmentResult         `json:"alignment" bson:"alignment"`
	Coaching       *CoachingResult         `json:"coaching,omitempty" bson:"coaching,omitempty"`
	CoachingNote   string                  `json:"coaching_note,omitempty" bson:"coaching_note,omitempty"`
	Verdict        *CrossValidationVerdict `json:"verdict,omitempty" bson:"verdict,omitempty"`
	CreatedAt      time.Time               `json:"created_at" bson:"created_at"`
}
