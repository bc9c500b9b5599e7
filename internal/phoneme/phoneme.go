// Package phoneme converts orthographic text into IPA phoneme sequences
// using per-language grapheme rule tables. Phonemization is a pure function:
// the same text and language code always yield the same sequence, which is
// what makes target-phrase phonemizations cacheable and the alignment layer
// testable.
//
// The rule tables are deliberately simplified (one reading per grapheme,
// longest match first, nasal vowels collapsed to their oral counterparts).
// They are good enough to localize a mispronunciation to a position in the
// phrase, which is all the alignment layer needs.
package phoneme

import (
	"fmt"
	"strings"
	"unicode"
)

// Phoneme is a single IPA phoneme symbol.
type Phoneme string

// Sequence is an ordered sequence of phonemes for one phrase.
// A sequence derived from empty text is the empty sequence, never nil
// placeholders.
type Sequence []Phoneme

// Strings returns the sequence as plain symbol strings.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}

// UnsupportedLanguageError is returned when no phoneme rules exist for a
// language code.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("no phonemization rules for language %q", e.Language)
}

// rule maps one grapheme (possibly multi-character) to its phonemes.
type rule struct {
	graph string
	out   []Phoneme
}

// Supported reports whether phonemization rules exist for the language code.
func Supported(language string) bool {
	_, ok := tables[normalizeLanguage(language)]
	return ok
}

// Phonemize converts text into its phoneme sequence for the given language
// code. Empty text returns the empty sequence. Unknown language codes return
// an *UnsupportedLanguageError.
func Phonemize(text, language string) (Sequence, error) {
	table, ok := tables[normalizeLanguage(language)]
	if !ok {
		return nil, &UnsupportedLanguageError{Language: language}
	}

	seq := Sequence{}
	runes := []rune(strings.ToLower(text))
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			i++
			continue
		}
		matched := false
		for _, r := range table {
			if matchesAt(runes, i, r.graph) {
				seq = append(seq, r.out...)
				i += len([]rune(r.graph))
				matched = true
				break
			}
		}
		if !matched {
			// Letters outside the table carry no phoneme. Dropping
			// them keeps the function total and deterministic.
			i++
		}
	}
	return seq, nil
}

// normalizeLanguage reduces BCP-47 style codes ("fr-FR", "el_GR") to their
// bare language subtag.
func normalizeLanguage(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	return l
}

func matchesAt(runes []rune, i int, graph string) bool {
	g := []rune(graph)
	if i+len(g) > len(runes) {
		return false
	}
	for j, r := range g {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
