// Package ws implements chunked attempt submission over WebSocket: the
// client sends a start frame describing the attempt, streams binary audio
// chunks, and receives the composite analysis result after the stop frame.
package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/domain/repositories"
	"github.com/coreyprator/super-flashcards-server/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next message from the peer.
	readWait = 60 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB per audio chunk

	// Maximum accumulated audio per attempt.
	maxAudioBytes = 10 * 1024 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// startMessage opens one attempt stream.
type startMessage struct {
	Type       string `json:"type"`
	TargetText string `json:"target_text"`
	Language   string `json:"language"`
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
	DurationMs int    `json:"duration_ms"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type resultMessage struct {
	Type   string                   `json:"type"`
	Result *entities.AnalysisResult `json:"result"`
}

// Streamer handles one-attempt-per-connection audio streaming.
type Streamer struct {
	analysis *usecase.AnalysisService
	attempts repositories.AttemptRepository
	logger   *zap.Logger
}

// NewStreamer creates a WebSocket attempt streamer.
func NewStreamer(analysis *usecase.AnalysisService, attempts repositories.AttemptRepository, logger *zap.Logger) *Streamer {
	return &Streamer{
		analysis: analysis,
		attempts: attempts,
		logger:   logger,
	}
}

// HandleAttemptStream upgrades the connection and processes exactly one
// attempt: start frame, binary audio chunks, stop frame, result frame.
func (s *Streamer) HandleAttemptStream(c echo.Context, userID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	start, err := s.readStart(conn)
	if err != nil {
		s.writeError(conn, "invalid start frame")
		return nil
	}
	if start.TargetText == "" || start.Language == "" {
		s.writeError(conn, "target_text and language are required")
		return nil
	}

	audio, err := s.readAudio(conn)
	if err != nil {
		s.logger.Warn("attempt stream ended early",
			zap.String("userID", userID),
			zap.Error(err))
		return nil
	}

	attempt := entities.NewAttempt(userID, start.TargetText, start.Language, "stream", start.DurationMs)
	if err := s.attempts.CreateAttempt(c.Request().Context(), attempt); err != nil {
		s.logger.Error("failed to store streamed attempt", zap.Error(err))
		s.writeError(conn, "internal error")
		return nil
	}

	encoding := start.Encoding
	if encoding == "" {
		encoding = "WEBM_OPUS"
	}
	result, err := s.analysis.Analyze(c.Request().Context(), attempt, audio, repositories.AudioConfig{
		SampleRate: start.SampleRate,
		Encoding:   encoding,
		Language:   start.Language,
	})
	if err != nil {
		s.logger.Error("streamed attempt analysis failed",
			zap.String("attemptID", attempt.ID),
			zap.Error(err))
		s.writeError(conn, "analysis failed")
		return nil
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(resultMessage{Type: "result", Result: result}); err != nil {
		s.logger.Warn("failed to deliver stream result", zap.Error(err))
	}
	return nil
}

func (s *Streamer) readStart(conn *websocket.Conn) (*startMessage, error) {
	conn.SetReadDeadline(time.Now().Add(readWait))
	msgType, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("expected text start frame, got message type %d", msgType)
	}
	var start startMessage
	if err := json.Unmarshal(data, &start); err != nil {
		return nil, err
	}
	if start.Type != "start" {
		return nil, fmt.Errorf("expected start frame, got %q", start.Type)
	}
	return &start, nil
}

// readAudio accumulates binary chunks until the stop frame arrives.
func (s *Streamer) readAudio(conn *websocket.Conn) ([]byte, error) {
	var audio []byte
	for {
		conn.SetReadDeadline(time.Now().Add(readWait))
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		switch msgType {
		case websocket.BinaryMessage:
			if len(audio)+len(data) > maxAudioBytes {
				return nil, fmt.Errorf("audio payload exceeds %d bytes", maxAudioBytes)
			}
			audio = append(audio, data...)
		case websocket.TextMessage:
			var control struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(data, &control); err != nil {
				return nil, err
			}
			if control.Type == "stop" {
				return audio, nil
			}
		}
	}
}

func (s *Streamer) writeError(conn *websocket.Conn, message string) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(errorMessage{Type: "error", Error: message}); err != nil {
		s.logger.Debug("failed to write error frame", zap.Error(err))
	}
}
