package session

import (
	"context"

	"github.com/voicebot/interview/backend/internal/model/chat"
)

// HistoryKey is the session key holding the conversation.
const HistoryKey = "chat_history"

// History is the typed accessor for a session's chat history. Save is the only
// writer, so the entry cap holds for everything it stores.
type History struct {
	store Store
	limit int
}

// NewHistory binds the accessor to store with the given cap.
func NewHistory(store Store, limit int) *History {
	if limit <= 0 {
		limit = chat.HistoryLimit
	}
	return &History{store: store, limit: limit}
}

// Limit returns the entry cap.
func (h *History) Limit() int {
	return h.limit
}

// Load returns the stored history, or an empty one when none exists.
// Entries with an unknown role are dropped.
func (h *History) Load(ctx context.Context, sessionID string) ([]chat.Message, error) {
	var stored []chat.Message
	if _, err := h.store.Get(ctx, sessionID, HistoryKey, &stored); err != nil {
		return nil, err
	}

	history := make([]chat.Message, 0, len(stored))
	for _, msg := range stored {
		if msg.Role.Valid() {
			history = append(history, msg)
		}
	}
	return history, nil
}

// Save caps and stores history, returning what was stored.
func (h *History) Save(ctx context.Context, sessionID string, history []chat.Message) ([]chat.Message, error) {
	trimmed := chat.Trim(history, h.limit)
	if err := h.store.Set(ctx, sessionID, HistoryKey, trimmed); err != nil {
		return nil, err
	}
	return trimmed, nil
}

// Reset empties the history and leaves other session keys alone.
func (h *History) Reset(ctx context.Context, sessionID string) error {
	return h.store.Set(ctx, sessionID, HistoryKey, []chat.Message{})
}
