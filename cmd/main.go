package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/adapters"
	"github.com/coreyprator/super-flashcards-server/adapters/llm"
	"github.com/coreyprator/super-flashcards-server/adapters/mongo"
	"github.com/coreyprator/super-flashcards-server/adapters/stt"
	"github.com/coreyprator/super-flashcards-server/adapters/tts"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
	"github.com/coreyprator/super-flashcards-server/internal/api"
	"github.com/coreyprator/super-flashcards-server/internal/auth"
	"github.com/coreyprator/super-flashcards-server/internal/ws"
	"github.com/coreyprator/super-flashcards-server/usecase"
)

const tokenTTL = 7 * 24 * time.Hour

func main() {
	// Local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx := context.Background()

	// Persistence: MongoDB when configured, in-memory otherwise.
	var (
		attemptRepo  repositories.AttemptRepository
		feedbackRepo repositories.FeedbackRepository
		userRepo     repositories.UserRepository
	)
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		client, err := mongo.NewClient(mongo.Config{
			URI:      uri,
			Database: os.Getenv("MONGODB_DATABASE"),
		}, logger)
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Close(shutdownCtx)
		}()
		attemptRepo = mongo.NewAttemptRepository(client.Database)
		feedbackRepo = mongo.NewFeedbackRepository(client.Database)
		userRepo = mongo.NewUserRepository(client.Database)
	} else {
		logger.Warn("MONGODB_URI not set, using in-memory repositories")
		attemptRepo = adapters.NewMemoryAttemptRepository()
		feedbackRepo = adapters.NewMemoryFeedbackRepository()
		userRepo = adapters.NewMemoryUserRepository()
	}

	// Speech recognition: Google Cloud when credentials are present,
	// scripted mock otherwise.
	var speechToText repositories.SpeechToText
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		google, err := stt.NewGoogleSpeechToText(ctx, stt.GoogleSpeechConfig{}, logger)
		if err != nil {
			logger.Fatal("failed to create speech client", zap.Error(err))
		}
		defer google.Close()
		speechToText = google
	} else {
		logger.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, using mock speech-to-text")
		speechToText = stt.NewMockSpeechToText("bonjour", 0.9, logger)
	}

	// Coaching model: Gemini when an API key is present, mock otherwise.
	var coach repositories.CoachingModel
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := llm.NewGeminiCoach(ctx, llm.GeminiConfig{APIKey: apiKey}, logger)
		if err != nil {
			logger.Fatal("failed to create Gemini coach", zap.Error(err))
		}
		coach = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, using mock coaching model")
		coach = llm.NewMockCoach()
	}

	// Reference audio synthesis is optional; without a key the synthesize
	// endpoint reports itself unavailable.
	var textToSpeech repositories.TextToSpeech
	if apiKey := os.Getenv("ELEVEN_LABS_API_KEY"); apiKey != "" {
		elevenLabs, err := tts.NewElevenLabsTTS(tts.ElevenLabsConfig{
			APIKey:  apiKey,
			VoiceID: os.Getenv("ELEVEN_LABS_VOICE_ID"),
		}, logger)
		if err != nil {
			logger.Fatal("failed to create TTS adapter", zap.Error(err))
		}
		textToSpeech = elevenLabs
	} else {
		logger.Warn("ELEVEN_LABS_API_KEY not set, reference audio synthesis disabled")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	tokenManager, err := auth.NewTokenManager([]byte(secret), tokenTTL)
	if err != nil {
		logger.Fatal("failed to create token manager", zap.Error(err))
	}

	validator := usecase.NewCrossValidator(usecase.CrossValidatorConfig{
		HighConfidence: envFloat("CROSS_VALIDATION_HIGH_CONFIDENCE"),
		LowConfidence:  envFloat("CROSS_VALIDATION_LOW_CONFIDENCE"),
	}, logger)
	analysisService := usecase.NewAnalysisService(speechToText, coach, validator, attemptRepo, logger)
	streamer := ws.NewStreamer(analysisService, attemptRepo, logger)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api.InitRoutes(e, api.Dependencies{
		Analysis: analysisService,
		Attempts: attemptRepo,
		Feedback: feedbackRepo,
		Users:    userRepo,
		Prompts:  llm.PromptCatalog{},
		TTS:      textToSpeech,
		Tokens:   tokenManager,
		TokenTTL: tokenTTL,
		Streamer: streamer,
	}, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// envFloat parses an optional float env var; zero means "use the default".
func envFloat(key string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
