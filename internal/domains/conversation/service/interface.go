package service

import (
	"context"

	"shopbot-backend/internal/domains/conversation/model"
)

type ServiceInterface interface {
	// StartSession creates a fresh session and runs its welcome turn.
	StartSession(ctx context.Context) (*model.ConversationState, string, error)

	// SendMessage runs one conversation turn for the session.
	SendMessage(ctx context.Context, sessionID, message string) (*model.ChatResponse, error)

	// CartSummary reads the session's current cart.
	CartSummary(ctx context.Context, sessionID string) (*model.CartSummaryResponse, error)

	// Reset discards the session state.
	Reset(ctx context.Context, sessionID string) error
}
