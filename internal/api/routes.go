package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
	"github.com/coreyprator/super-flashcards-server/internal/auth"
	"github.com/coreyprator/super-flashcards-server/internal/phoneme"
	"github.com/coreyprator/super-flashcards-server/internal/ws"
	"github.com/coreyprator/super-flashcards-server/usecase"
)

const defaultEncoding = "WEBM_OPUS"

// Dependencies bundles everything the HTTP layer needs.
type Dependencies struct {
	Analysis *usecase.AnalysisService
	Attempts repositories.AttemptRepository
	Feedback repositories.FeedbackRepository
	Users    repositories.UserRepository
	Prompts  repositories.PromptCatalog
	TTS      repositories.TextToSpeech
	Tokens   *auth.TokenManager
	TokenTTL time.Duration
	Streamer *ws.Streamer
}

type handler struct {
	deps   Dependencies
	logger *zap.Logger
}

// InitRoutes initializes all API routes.
func InitRoutes(e *echo.Echo, deps Dependencies, logger *zap.Logger) {
	h := &handler{deps: deps, logger: logger}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "super-flashcards-server",
		})
	})

	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", h.register)
	v1.POST("/auth/login", h.login)

	authed := v1.Group("", h.requireUser)
	authed.POST("/attempts", h.submitAttempt)
	authed.GET("/attempts/:id/analysis", h.getAnalysis)
	authed.POST("/attempts/:id/feedback", h.submitFeedback)
	authed.GET("/coaching/prompts/:language", h.getPromptTemplate)
	authed.POST("/phrases/synthesize", h.synthesize)

	e.GET("/ws/attempts", h.websocketWithAuth)
}

// requireUser validates the bearer token and stashes the user ID on the
// request context.
func (h *handler) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var token string
		authHeader := c.Request().Header.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
		if token == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "missing_token",
				Message: "JWT token is required in Authorization header",
			})
		}

		claims, err := h.deps.Tokens.ValidateToken(token)
		if err != nil {
			h.logger.Warn("Request rejected: invalid token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "Invalid or expired JWT token",
			})
		}
		if claims.Role != "user" || claims.UserID == "" {
			return c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "invalid_role",
				Message: "Only user tokens can access this endpoint",
			})
		}

		c.Set("user_id", claims.UserID)
		return next(c)
	}
}

func (h *handler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing_fields", Message: "Email, name and password are required"})
	}

	if _, err := h.deps.Users.GetByEmail(c.Request().Context(), req.Email); err == nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "email_taken", Message: "An account with this email already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.deps.Users.Create(c.Request().Context(), user); err != nil {
		h.logger.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}

	return h.issueToken(c, user.ID)
}

func (h *handler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}

	user, err := h.deps.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication_failed", Message: "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		h.logger.Warn("Login failed", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication_failed", Message: "Invalid email or password"})
	}

	return h.issueToken(c, user.ID)
}

func (h *handler) issueToken(c echo.Context, userID string) error {
	token, err := h.deps.Tokens.GenerateUserToken(userID)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.String("userID", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "token_generation_failed"})
	}
	return c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.deps.TokenTTL),
		UserID:    userID,
	})
}

// submitAttempt creates the attempt and runs the analysis pipeline
// synchronously, returning the composite result. Fatal pipeline errors map
// to statuses that identify the failing step without leaking provider
// error text.
func (h *handler) submitAttempt(c echo.Context) error {
	var req SubmitAttemptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}
	if req.TargetText == "" || req.Language == "" || req.AudioBase64 == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing_fields", Message: "Target text, language and audio are required"})
	}
	if !phoneme.Supported(req.Language) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported_language", Message: "No pronunciation rules exist for this language"})
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_audio", Message: "Audio payload is not valid base64"})
	}

	encoding := req.Encoding
	if encoding == "" {
		encoding = defaultEncoding
	}

	userID := c.Get("user_id").(string)
	attempt := entities.NewAttempt(userID, req.TargetText, req.Language, "inline", req.DurationMs)
	if err := attempt.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_attempt", Message: err.Error()})
	}
	if err := h.deps.Attempts.CreateAttempt(c.Request().Context(), attempt); err != nil {
		h.logger.Error("Failed to store attempt", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}

	result, err := h.deps.Analysis.Analyze(c.Request().Context(), attempt, audio, repositories.AudioConfig{
		SampleRate: req.SampleRate,
		Encoding:   encoding,
		Language:   req.Language,
	})
	if err != nil {
		return h.analysisError(c, attempt.ID, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *handler) analysisError(c echo.Context, attemptID string, err error) error {
	var terr *repositories.TranscriptionError
	var lerr *phoneme.UnsupportedLanguageError
	switch {
	case errors.As(err, &terr):
		h.logger.Error("Transcription failed", zap.String("attemptID", attemptID), zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "transcription_failed",
			Message: "The speech recognizer could not process this recording",
		})
	case errors.As(err, &lerr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unsupported_language",
			Message: "No pronunciation rules exist for this language",
		})
	default:
		h.logger.Error("Attempt analysis failed", zap.String("attemptID", attemptID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "analysis_failed"})
	}
}

func (h *handler) getAnalysis(c echo.Context) error {
	attemptID := c.Param("id")

	result, err := h.deps.Attempts.GetResult(c.Request().Context(), attemptID)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			if _, aerr := h.deps.Attempts.GetAttempt(c.Request().Context(), attemptID); aerr == nil {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_processed", Message: "Attempt has not been analyzed yet"})
			}
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "attempt_not_found"})
		}
		h.logger.Error("Failed to load analysis result", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *handler) submitFeedback(c echo.Context) error {
	attemptID := c.Param("id")
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}

	if _, err := h.deps.Attempts.GetAttempt(c.Request().Context(), attemptID); err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "attempt_not_found"})
	}

	userID := c.Get("user_id").(string)
	record := entities.NewFeedbackRecord(attemptID, userID, req.STTRating, req.CoachingRating, req.Comment)
	if err := record.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_feedback", Message: err.Error()})
	}

	if err := h.deps.Feedback.Create(c.Request().Context(), record); err != nil {
		if errors.Is(err, repositories.ErrFeedbackExists) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "feedback_exists", Message: "Feedback was already submitted for this attempt"})
		}
		h.logger.Error("Failed to store feedback", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *handler) getPromptTemplate(c echo.Context) error {
	language := c.Param("language")
	template, err := h.deps.Prompts.Template(language)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "template_not_found", Message: "No coaching template for this language"})
	}
	return c.JSON(http.StatusOK, PromptTemplateResponse{Language: language, Template: template})
}

// synthesize streams reference pronunciation audio for a phrase.
func (h *handler) synthesize(c echo.Context) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Invalid request format"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing_fields", Message: "Text is required"})
	}
	if h.deps.TTS == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "synthesis_unavailable", Message: "Reference audio synthesis is not configured"})
	}

	audioChan, err := h.deps.TTS.ConvertTextToSpeech(c.Request().Context(), req.Text, req.Language)
	if err != nil {
		h.logger.Error("Failed to synthesize phrase", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "synthesis_failed"})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "audio/mpeg")
	resp.WriteHeader(http.StatusOK)
	for chunk := range audioChan {
		if _, err := resp.Write(chunk); err != nil {
			return err
		}
		resp.Flush()
	}
	return nil
}
