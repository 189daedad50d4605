package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shopbot-backend/internal/domains/conversation/model"
)

// MemoryStore keeps sessions in process memory. States are stored as
// JSON so Load hands back an independent copy, same as the Redis store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*model.ConversationState, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	var state model.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

func (s *MemoryStore) Save(_ context.Context, state *model.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.SessionID, err)
	}

	s.mu.Lock()
	s.sessions[state.SessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
