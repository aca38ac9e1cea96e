package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/middleware"
)

const (
	maxFrameBytes = 64 << 10
	writeTimeout  = 10 * time.Second
)

// WebSocketHandler runs chat turns over a websocket, one reply per inbound frame.
type WebSocketHandler struct {
	svc      TurnService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the handler. allowedOrigins follows the CORS
// setting; "*" accepts any origin.
func NewWebSocketHandler(svc TurnService, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketHandler{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the websocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

type outgoingMessage struct {
	Reply  string `json:"reply,omitempty"`
	Error  string `json:"error,omitempty"`
	Status string `json:"status,omitempty"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	h.logger.Info("websocket opened", zap.String("session", sessionID))
	ctx := r.Context()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.String("session", sessionID), zap.Error(err))
			}
			return
		}

		out := outgoingMessage{Error: errInvalidJSON}
		if msgType == websocket.TextMessage {
			out = h.handleFrame(ctx, sessionID, data)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(out); err != nil {
			h.logger.Warn("websocket write failed", zap.String("session", sessionID), zap.Error(err))
			return
		}
	}
}

func (h *WebSocketHandler) handleFrame(ctx context.Context, sessionID string, data []byte) outgoingMessage {
	in, err := decodeRequest(data)
	if err != nil {
		return outgoingMessage{Error: errInvalidJSON}
	}

	if in.Type == "reset" {
		if err := h.svc.Reset(ctx, sessionID); err != nil {
			h.logger.Error("reset session failed", zap.String("session", sessionID), zap.Error(err))
		}
		return outgoingMessage{Status: "ok"}
	}

	message, err := in.text()
	if err != nil {
		return outgoingMessage{Error: errInvalidJSON}
	}

	turn, err := h.svc.Reply(ctx, sessionID, message)
	if err != nil {
		_, text := classifyTurnError(h.logger, sessionID, err)
		return outgoingMessage{Error: text}
	}
	return outgoingMessage{Reply: turn.Reply}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		// Same-origin pages are always allowed.
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
