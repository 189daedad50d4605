package repository

import (
	"context"
	"fmt"
	"time"

	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/pkg/cache"
)

const sessionKeyPrefix = "session:"

// RedisStore persists sessions through the cache layer so conversations
// survive process restarts and can be shared by API replicas, as long
// as the caller still serializes turns per session id.
type RedisStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisStore(c cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	var state model.ConversationState
	found, err := s.cache.Get(ctx, sessionKey(sessionID), &state)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *model.ConversationState) error {
	if err := s.cache.Set(ctx, sessionKey(state.SessionID), state, s.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.SessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKey(sessionID))
}
