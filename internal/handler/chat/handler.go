package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/middleware"
	chatService "github.com/voicebot/interview/backend/internal/service/chat"
	"github.com/voicebot/interview/backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// Error strings are part of the public API contract.
const (
	errPostOnly           = "POST only"
	errInvalidJSON        = "Invalid JSON"
	errEmptyMessage       = "Empty message"
	errSessionUnavailable = "Session unavailable"
)

var errMalformed = errors.New("malformed chat request")

// TurnService runs chat turns; implemented by the chat service.
type TurnService interface {
	Reply(ctx context.Context, sessionID, message string) (chatService.Turn, error)
	Reset(ctx context.Context, sessionID string) error
}

// Handler serves the chat and reset endpoints.
type Handler struct {
	svc    TurnService
	logger *zap.Logger
}

// New creates the chat handler.
func New(svc TurnService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the endpoints. Both accept any method so that the
// chat endpoint can answer non-POST requests with its own 400 body.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/chat/", h.handleChat)
	r.HandleFunc("/reset-session/", h.handleReset)
}

// chatRequest is the body of a chat POST and of an inbound websocket frame.
type chatRequest struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusBadRequest, errPostOnly)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, errInvalidJSON)
		return
	}

	message, err := decodeMessage(body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, errInvalidJSON)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	turn, err := h.svc.Reply(r.Context(), sessionID, message)
	if err != nil {
		status, text := classifyTurnError(h.logger, sessionID, err)
		utils.RespondError(w, status, text)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Reply: turn.Reply})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	if err := h.svc.Reset(r.Context(), sessionID); err != nil {
		// The reset contract always answers ok; the failure is only logged.
		h.logger.Error("reset session failed", zap.String("session", sessionID), zap.Error(err))
	}
	utils.RespondStatus(w, "ok")
}

// classifyTurnError maps a turn error to a status and public error string.
func classifyTurnError(logger *zap.Logger, sessionID string, err error) (int, string) {
	if errors.Is(err, chatService.ErrEmptyMessage) {
		return http.StatusBadRequest, errEmptyMessage
	}
	logger.Error("chat turn failed", zap.String("session", sessionID), zap.Error(err))
	return http.StatusInternalServerError, errSessionUnavailable
}

// decodeRequest accepts only a JSON object.
func decodeRequest(data []byte) (*chatRequest, error) {
	var req *chatRequest
	if err := json.Unmarshal(data, &req); err != nil || req == nil {
		return nil, errMalformed
	}
	return req, nil
}

// text returns the "message" string. A missing key yields "", which the
// service rejects as empty; null or a non-string value is malformed.
func (req *chatRequest) text() (string, error) {
	if len(req.Message) == 0 {
		return "", nil
	}
	var message *string
	if err := json.Unmarshal(req.Message, &message); err != nil || message == nil {
		return "", errMalformed
	}
	return *message, nil
}

func decodeMessage(data []byte) (string, error) {
	req, err := decodeRequest(data)
	if err != nil {
		return "", err
	}
	return req.text()
}
