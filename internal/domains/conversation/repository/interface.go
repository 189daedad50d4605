package repository

import (
	"context"
	"errors"

	"shopbot-backend/internal/domains/conversation/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists conversation state between turns, keyed by
// session id. The store does no locking across turns: callers must not
// run two turns of the same session concurrently.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*model.ConversationState, error)
	Save(ctx context.Context, state *model.ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}
