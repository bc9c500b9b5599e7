package api

import "time"

// RegisterRequest represents the request payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response payload for authentication.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

// SubmitAttemptRequest represents one recorded pronunciation attempt.
// Audio is base64-encoded in the payload; encoding and sample rate must
// match what the recognizer accepts.
type SubmitAttemptRequest struct {
	TargetText  string `json:"target_text" validate:"required"`
	Language    string `json:"language" validate:"required"`
	AudioBase64 string `json:"audio_base64" validate:"required"`
	Encoding    string `json:"encoding"`
	SampleRate  int    `json:"sample_rate"`
	DurationMs  int    `json:"duration_ms"`
}

// FeedbackRequest represents the user's rating of one attempt's analysis.
type FeedbackRequest struct {
	STTRating      int    `json:"stt_rating" validate:"required"`
	CoachingRating int    `json:"coaching_rating" validate:"required"`
	Comment        string `json:"comment"`
}

// SynthesizeRequest asks for reference pronunciation audio of a phrase.
type SynthesizeRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language"`
}

// PromptTemplateResponse carries a coaching prompt template.
type PromptTemplateResponse struct {
	Language string `json:"language"`
	Template string `json:"template"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
