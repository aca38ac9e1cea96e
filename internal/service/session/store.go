package session

import (
	"context"
	"errors"
)

// ErrInvalidSessionID is returned when a store is asked about an empty id.
var ErrInvalidSessionID = errors.New("session id is required")

// Store is a per-session key-value store. Values are JSON encoded, so any
// JSON-serialisable value can be saved and decoded back into dst.
//
// Concurrent writers to the same session and key are last-write-wins.
type Store interface {
	// Get decodes the value under key into dst. It reports false when the
	// session or key does not exist.
	Get(ctx context.Context, sessionID, key string, dst any) (bool, error)
	// Set stores value under key and refreshes the session's expiry.
	Set(ctx context.Context, sessionID, key string, value any) error
}
