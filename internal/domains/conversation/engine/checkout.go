package engine

import (
	"strings"

	"shopbot-backend/internal/domains/conversation/model"
	orderModel "shopbot-backend/internal/domains/order/model"
	"shopbot-backend/pkg/logger"
)

// checkoutKeywords are lead-in phrases that start a checkout rather than
// answer the pending question, so "I want to buy" is never taken as a
// customer name.
var checkoutKeywords = []string{"checkout", "check out", "buy", "purchase", "pay", "complete", "finish"}

// namePrefixes are stripped off a name answer ("my name is Ana" -> "Ana").
var namePrefixes = []string{"my name is", "i am", "i'm", "it's", "name:"}

// handleCheckout walks the checkout sub-states in order: cart check,
// collect name, collect city, confirm. Each invocation advances at most
// one step; with no new customer data it re-asks for exactly the next
// missing field and mutates nothing else.
func (e *Engine) handleCheckout(state *model.ConversationState, userMessage string) (string, *model.ConversationError) {
	if state.Cart.IsEmpty() {
		// Precondition failure: report and leave the stage alone.
		return checkoutEmptyCartMessage, model.NewConversationError(
			model.ErrCodeEmptyCart, checkoutEmptyCartMessage, orderModel.ErrEmptyCart)
	}

	if state.CustomerName == "" {
		return e.collectName(state, userMessage), nil
	}

	if state.CustomerCity == "" {
		return e.collectCity(state, userMessage)
	}

	// Both fields already on file (carried over from a previous order in
	// this session): confirm straight away.
	return e.confirmOrder(state)
}

func (e *Engine) collectName(state *model.ConversationState, userMessage string) string {
	state.Stage = model.StageCheckout

	if isCheckoutRequest(userMessage) {
		return askNameMessage
	}

	name := extractName(userMessage)
	if name == "" {
		return askNameAgainMessage
	}

	state.CustomerName = name
	return askCityMessage(name)
}

func (e *Engine) collectCity(state *model.ConversationState, userMessage string) (string, *model.ConversationError) {
	city := strings.TrimSpace(userMessage)
	if city == "" || isCheckoutRequest(city) {
		state.Stage = model.StageCheckout
		return askCityMessage(state.CustomerName), nil
	}

	state.CustomerCity = city
	return e.confirmOrder(state)
}

// confirmOrder builds the immutable order snapshot, clears the live cart
// and completes the conversation.
func (e *Engine) confirmOrder(state *model.ConversationState) (string, *model.ConversationError) {
	order, err := orderModel.NewFromCart(state.Cart, state.CustomerName, state.CustomerCity)
	if err != nil {
		return checkoutEmptyCartMessage, model.NewConversationError(
			model.ErrCodeEmptyCart, checkoutEmptyCartMessage, err)
	}

	state.Order = order
	state.Cart.Clear()
	state.Stage = model.StageCompleted

	logger.Info("Order completed", map[string]interface{}{
		"session_id":   state.SessionID,
		"order_number": order.OrderNumber,
		"total":        order.Total.StringFixed(2),
		"items":        order.ItemCount(),
	})

	return formatOrderConfirmation(order), nil
}

func isCheckoutRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range checkoutKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// extractName strips common lead-ins off a name answer.
func extractName(message string) string {
	name := strings.TrimSpace(message)
	lower := strings.ToLower(name)
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(lower, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}
	return name
}
