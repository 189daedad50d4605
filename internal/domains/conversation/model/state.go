package model

import (
	"time"

	cartModel "shopbot-backend/internal/domains/cart/model"
	orderModel "shopbot-backend/internal/domains/order/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Message roles in the conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the session history.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductSummary is a lightweight snapshot of a listed product, kept so
// follow-up references by index ("item 3") resolve against what the user
// actually saw.
type ProductSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
}

// ConversationState is the single mutable aggregate of one session.
// It is threaded explicitly through engine and handlers; there is no
// process-wide conversational state. Not safe for concurrent turns:
// the caller serializes invocations per session id.
type ConversationState struct {
	SessionID         string                  `json:"session_id"`
	Messages          []Message               `json:"messages"`
	Cart              *cartModel.ShoppingCart `json:"cart"`
	CurrentIntent     UserIntent              `json:"current_intent"`
	Stage             ConversationStage       `json:"stage"`
	LastSearchResults []ProductSummary        `json:"last_search_results,omitempty"`

	// LastProductID is a weak reference: id plus catalog lookup only,
	// never a live product, so a catalog reload between turns cannot
	// leave a stale pointer behind.
	LastProductID string `json:"last_product_id,omitempty"`

	CustomerName string            `json:"customer_name,omitempty"`
	CustomerCity string            `json:"customer_city,omitempty"`
	Order        *orderModel.Order `json:"order,omitempty"`
}

// NewConversationState builds the initial state for a fresh session.
// A zero session id gets a generated uuid.
func NewConversationState(sessionID string) *ConversationState {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &ConversationState{
		SessionID:     sessionID,
		Cart:          cartModel.NewShoppingCart(),
		CurrentIntent: IntentUnknown,
		Stage:         StageWelcome,
	}
}

// AppendUserMessage records an inbound user message
func (s *ConversationState) AppendUserMessage(content string) {
	s.Messages = append(s.Messages, Message{
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// AppendAssistantMessage records a response message
func (s *ConversationState) AppendAssistantMessage(content string) {
	s.Messages = append(s.Messages, Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// LastUserMessage returns the most recent user message content
func (s *ConversationState) LastUserMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}

// RecentMessages returns up to n messages from the end of the history,
// oldest first. Used to give the classifier short context.
func (s *ConversationState) RecentMessages(n int) []Message {
	if n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	start := len(s.Messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(s.Messages)-start)
	copy(out, s.Messages[start:])
	return out
}

// CustomerInfoComplete reports whether checkout has both shipping fields
func (s *ConversationState) CustomerInfoComplete() bool {
	return s.CustomerName != "" && s.CustomerCity != ""
}

// Validate performs a consistency check on the aggregate. A state that
// fails here cannot be characterized by any handler and the session
// must be treated as terminal.
func (s *ConversationState) Validate() error {
	if s.SessionID == "" {
		return ErrCorruptedState
	}
	if s.Cart == nil {
		return ErrCorruptedState
	}
	if !s.Stage.IsValid() {
		return ErrCorruptedState
	}
	return nil
}
