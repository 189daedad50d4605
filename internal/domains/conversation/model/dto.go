package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ChatRequest is one inbound user message.
type ChatRequest struct {
	Message string `json:"message"`
}

func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 2000)),
	)
}

// ChatResponse is the outcome of one turn.
type ChatResponse struct {
	SessionID   string `json:"session_id"`
	Reply       string `json:"reply"`
	Stage       string `json:"stage"`
	Intent      string `json:"intent"`
	OrderNumber string `json:"order_number,omitempty"`
}

// CartItemSummary is one cart line in API responses.
type CartItemSummary struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// CartSummaryResponse is the cart read model for the API.
type CartSummaryResponse struct {
	SessionID string            `json:"session_id"`
	Items     []CartItemSummary `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     string            `json:"total"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	Reply     string `json:"reply"`
	Stage     string `json:"stage"`
}
