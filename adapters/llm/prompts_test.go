package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestTemplatePerLanguage(t *testing.T) {
	catalog := PromptCatalog{}

	for _, language := range []string{"fr", "el", "es", "fr-FR", "EL"} {
		template, err := catalog.Template(language)
		if err != nil {
			t.Errorf("Template(%q) returned error: %v", language, err)
			continue
		}
		if !strings.Contains(template, "JSON") {
			t.Errorf("Template(%q) should describe the JSON response shape", language)
		}
	}
}

func TestTemplateUnknownLanguage(t *testing.T) {
	catalog := PromptCatalog{}
	if _, err := catalog.Template("xx"); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("Expected ErrNoTemplate, got %v", err)
	}
}

func TestTemplateOrDefaultFallsBack(t *testing.T) {
	template := templateOrDefault("xx")
	if template != genericTemplate {
		t.Error("Expected unknown language to fall back to the generic template")
	}
}
