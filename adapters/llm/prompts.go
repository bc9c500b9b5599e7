package llm

import (
	"errors"
	"strings"

	"github.com/coreyprator/super-flashcards-server/domain/repositories"
)

// ErrNoTemplate is returned when no coaching template exists for a
// language code.
var ErrNoTemplate = errors.New("no coaching prompt template for language")

// PromptCatalog is the static, language-keyed store of coaching prompt
// templates. Read-only after construction, safe for concurrent use.
type PromptCatalog struct{}

var _ repositories.PromptCatalog = PromptCatalog{}

// Template returns the instructional template for the language code.
func (PromptCatalog) Template(language string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	if t, ok := promptTemplates[l]; ok {
		return t, nil
	}
	return "", ErrNoTemplate
}

// templateOrDefault is used when building coaching requests: an unknown
// language falls back to the generic template rather than failing the call.
func templateOrDefault(language string) string {
	if t, err := (PromptCatalog{}).Template(language); err == nil {
		return t
	}
	return genericTemplate
}

const genericTemplate = `You are a pronunciation coach for language learners.
The learner tried to say a target phrase; a speech recognizer transcribed what it heard,
with a confidence score per word. Judge how close the learner came and coach them.

Respond with JSON only, using exactly this shape:
{
  "clarity": <integer 0-10, overall intelligibility>,
  "rhythm": <one of "smooth","natural","choppy","staccato","hesitant">,
  "issues": [
    {
      "target_sound": "<sound the phrase requires>",
      "produced_sound": "<sound the learner made instead>",
      "word": "<the transcribed word the issue occurred in>",
      "example": "<short like-for-like comparison>",
      "suggestion": "<one concrete articulation tip>"
    }
  ],
  "top_drill": "<the single most useful drill, or empty>",
  "encouragement": "<one short encouraging sentence>"
}

Flag only issues you can tie to a specific word. An empty issues list is a valid answer.`

var promptTemplates = map[string]string{
	"fr": genericTemplate + `

The target language is French. Pay particular attention to nasal vowels,
the uvular r, and final-consonant liaison.`,
	"el": genericTemplate + `

The target language is Greek. Pay particular attention to the dental
fricatives (θ, δ), the velar γ, and the voiced-stop digraphs μπ and ντ.`,
	"es": genericTemplate + `

The target language is Spanish. Pay particular attention to the tapped and
trilled r, pure vowels, and the b/v merger.`,
}
