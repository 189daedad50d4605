package service

import (
	"context"
	"errors"
	"fmt"

	"shopbot-backend/internal/domains/conversation/engine"
	"shopbot-backend/internal/domains/conversation/model"
	"shopbot-backend/internal/domains/conversation/repository"
	orderRepo "shopbot-backend/internal/domains/order/repository"
	"shopbot-backend/pkg/logger"
)

// ChatService owns the session lifecycle around the engine: load state,
// run exactly one turn, persist, archive a completed order. The caller
// is responsible for not invoking the same session concurrently.
type ChatService struct {
	engine   *engine.Engine
	sessions repository.SessionStore
	orders   orderRepo.RepositoryInterface
}

func NewChatService(
	eng *engine.Engine,
	sessions repository.SessionStore,
	orders orderRepo.RepositoryInterface,
) ServiceInterface {
	return &ChatService{
		engine:   eng,
		sessions: sessions,
		orders:   orders,
	}
}

func (s *ChatService) StartSession(ctx context.Context) (*model.ConversationState, string, error) {
	state := model.NewConversationState("")

	// Prime the welcome turn so the client gets the greeting up front.
	reply, err := s.engine.Advance(ctx, state, "hello")
	if err != nil {
		return nil, "", fmt.Errorf("failed to start session: %w", err)
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, "", fmt.Errorf("failed to persist new session: %w", err)
	}

	logger.Info("Session started", map[string]interface{}{
		"session_id": state.SessionID,
	})

	return state, reply, nil
}

func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (*model.ChatResponse, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		state = model.NewConversationState(sessionID)
	} else if err != nil {
		return nil, err
	}

	var previousOrder string
	if state.Order != nil {
		previousOrder = state.Order.OrderNumber
	}

	reply, err := s.engine.Advance(ctx, state, message)
	if err != nil {
		// Unrecoverable state: persist the ERROR stage so the caller
		// sees the session is terminal, then report.
		if saveErr := s.sessions.Save(ctx, state); saveErr != nil {
			logger.Error("Failed to persist errored session", saveErr)
		}
		return nil, fmt.Errorf("session %s cannot continue: %w", sessionID, err)
	}

	// Archive an order completed this turn. Archive failure must not
	// undo the conversation; it is logged and the order remains on the
	// session state.
	if state.Order != nil && state.Order.OrderNumber != previousOrder {
		if err := s.orders.Save(ctx, state.Order); err != nil {
			logger.Error("Failed to archive order "+state.Order.OrderNumber, err)
		}
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist session %s: %w", sessionID, err)
	}

	resp := &model.ChatResponse{
		SessionID: state.SessionID,
		Reply:     reply,
		Stage:     state.Stage.String(),
		Intent:    state.CurrentIntent.String(),
	}
	if state.Order != nil {
		resp.OrderNumber = state.Order.OrderNumber
	}
	return resp, nil
}

func (s *ChatService) CartSummary(ctx context.Context, sessionID string) (*model.CartSummaryResponse, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &model.CartSummaryResponse{
		SessionID: state.SessionID,
		Items:     []model.CartItemSummary{},
		ItemCount: state.Cart.ItemCount(),
		Total:     state.Cart.Total().StringFixed(2),
	}
	for _, item := range state.Cart.Items() {
		summary.Items = append(summary.Items, model.CartItemSummary{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}
	return summary, nil
}

func (s *ChatService) Reset(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
