package phoneme

import (
	"errors"
	"testing"
)

func TestPhonemizeFrenchBonjour(t *testing.T) {
	seq, err := Phonemize("bonjour", "fr")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}

	want := []string{"b", "ɔ", "ʒ", "u", "ʁ"}
	got := seq.Strings()
	if len(got) != len(want) {
		t.Fatalf("Expected %d phonemes, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Phoneme %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPhonemizeDeterministic(t *testing.T) {
	first, err := Phonemize("merci beaucoup", "fr")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Phonemize("merci beaucoup", "fr")
		if err != nil {
			t.Fatalf("Phonemize returned error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("Run %d produced %d phonemes, first run produced %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("Run %d differs at index %d: %s vs %s", i, j, again[j], first[j])
			}
		}
	}
}

func TestPhonemizeEmptyText(t *testing.T) {
	seq, err := Phonemize("", "fr")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	if seq == nil {
		t.Fatal("Expected empty sequence, got nil")
	}
	if len(seq) != 0 {
		t.Errorf("Expected empty sequence, got %v", seq)
	}
}

func TestPhonemizeSkipsNonLetters(t *testing.T) {
	plain, err := Phonemize("bonjour", "fr")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	decorated, err := Phonemize("  Bonjour !?! ", "fr")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	if len(plain) != len(decorated) {
		t.Fatalf("Punctuation changed the sequence: %v vs %v", plain, decorated)
	}
	for i := range plain {
		if plain[i] != decorated[i] {
			t.Errorf("Index %d: expected %s, got %s", i, plain[i], decorated[i])
		}
	}
}

func TestPhonemizeUnsupportedLanguage(t *testing.T) {
	_, err := Phonemize("hello", "xx")
	if err == nil {
		t.Fatal("Expected error for unsupported language")
	}
	var ule *UnsupportedLanguageError
	if !errors.As(err, &ule) {
		t.Fatalf("Expected *UnsupportedLanguageError, got %T", err)
	}
	if ule.Language != "xx" {
		t.Errorf("Expected language xx in error, got %s", ule.Language)
	}
}

func TestPhonemizeRegionSubtags(t *testing.T) {
	bare, err := Phonemize("bonjour", "fr")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	for _, code := range []string{"fr-FR", "fr_CA", "FR-fr"} {
		regional, err := Phonemize("bonjour", code)
		if err != nil {
			t.Fatalf("Phonemize(%q) returned error: %v", code, err)
		}
		if len(regional) != len(bare) {
			t.Fatalf("Code %q produced %v, expected %v", code, regional, bare)
		}
	}
}

func TestSupported(t *testing.T) {
	for _, code := range []string{"fr", "el", "es", "fr-FR", "el_GR"} {
		if !Supported(code) {
			t.Errorf("Expected language %q to be supported", code)
		}
	}
	for _, code := range []string{"", "xx", "ja"} {
		if Supported(code) {
			t.Errorf("Expected language %q to be unsupported", code)
		}
	}
}

func TestPhonemizeGreek(t *testing.T) {
	// καλημέρα: κ α λ η μ έ ρ α
	seq, err := Phonemize("καλημέρα", "el")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	if len(seq) == 0 {
		t.Fatal("Expected phonemes for Greek text, got none")
	}
	if seq[0] != "k" {
		t.Errorf("Expected first phoneme k, got %s", seq[0])
	}
}

func TestPhonemizeSpanish(t *testing.T) {
	seq, err := Phonemize("gracias", "es")
	if err != nil {
		t.Fatalf("Phonemize returned error: %v", err)
	}
	if len(seq) == 0 {
		t.Fatal("Expected phonemes for Spanish text, got none")
	}
}
