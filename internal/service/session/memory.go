package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory with idle expiry.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewMemoryStore creates a store whose sessions expire ttl after their last write.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoryStore{cache: cache.New(ttl, cleanup)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, sessionID, key string, dst any) (bool, error) {
	if sessionID == "" {
		return false, ErrInvalidSessionID
	}

	s.mu.Lock()
	raw, ok := s.lookup(sessionID)[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode session key %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value any) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session key %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lookup(sessionID)
	next := make(map[string][]byte, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[key] = raw
	s.cache.Set(sessionID, next, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) lookup(sessionID string) map[string][]byte {
	if x, found := s.cache.Get(sessionID); found {
		return x.(map[string][]byte)
	}
	return nil
}
