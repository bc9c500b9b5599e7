package tts

import (
	"testing"
)

func TestValidateElevenLabsConfig(t *testing.T) {
	valid := ElevenLabsConfig{APIKey: "key"}
	if err := ValidateElevenLabsConfig(valid); err != nil {
		t.Errorf("Valid config should not have validation errors, got: %v", err)
	}

	if err := ValidateElevenLabsConfig(ElevenLabsConfig{}); err == nil {
		t.Error("Config without API key should have validation error")
	}

	bad := ElevenLabsConfig{APIKey: "key", Stability: 1.5}
	if err := ValidateElevenLabsConfig(bad); err == nil {
		t.Error("Stability above 1 should have validation error")
	}

	bad = ElevenLabsConfig{APIKey: "key", ChunkSize: -1}
	if err := ValidateElevenLabsConfig(bad); err == nil {
		t.Error("Negative chunk size should have validation error")
	}
}

func TestDefaultsApplied(t *testing.T) {
	tts, err := NewElevenLabsTTS(ElevenLabsConfig{APIKey: "key"}, nil)
	if err != nil {
		t.Fatalf("NewElevenLabsTTS returned error: %v", err)
	}

	if tts.voiceID != defaultVoiceID {
		t.Errorf("Expected default voice, got %s", tts.voiceID)
	}
	if tts.modelID != defaultModelID {
		t.Errorf("Expected default model, got %s", tts.modelID)
	}
	if tts.chunkSize != defaultChunkSize {
		t.Errorf("Expected default chunk size, got %d", tts.chunkSize)
	}
}
