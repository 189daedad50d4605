package llm

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Cart actions the extractor may return. Anything else is a schema
// violation, never silently defaulted.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// Product reference kinds the extractor may return.
const (
	RefByName  = "name"
	RefByID    = "id"
	RefByIndex = "index"
	RefByLast  = "last"
)

// ProductReference is a loosely-typed pointer at a catalog product: by
// name, id, 1-based listing index, or "the last mentioned one".
type ProductReference struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (r ProductReference) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required,
			validation.In(RefByName, RefByID, RefByIndex, RefByLast)),
	)
}

// CartAction is the structured payload extracted from a manage-cart
// message. Quantity defaults to 1 when the message does not carry one.
type CartAction struct {
	Action           string           `json:"action"`
	Quantity         int              `json:"quantity"`
	ProductReference ProductReference `json:"product_reference"`
}

func (a CartAction) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Action, validation.Required, validation.In(ActionAdd, ActionRemove)),
		validation.Field(&a.Quantity, validation.Min(1)),
		validation.Field(&a.ProductReference),
	)
}

// Turn is one line of recent conversation history handed to the model.
type Turn struct {
	Role    string
	Content string
}

// Candidate is a catalog product offered to the extractor so it can map
// free text onto a concrete id or name.
type Candidate struct {
	ID       string
	Name     string
	Price    string
	Category string
	Stock    int
}

// Context is the minimal conversation context the model needs for
// classification and extraction.
type Context struct {
	Stage           string
	CartItemCount   int
	CustomerName    string
	CustomerCity    string
	LastProductName string
	History         []Turn
	Candidates      []Candidate
}

// Service is the capability the conversation engine is injected with.
// Implementations must be total over arbitrary text: ClassifyIntent
// either returns a closed-set label or an error, never free text.
type Service interface {
	// ClassifyIntent returns the raw intent label for a user message.
	ClassifyIntent(ctx context.Context, message string, convCtx Context) (string, error)

	// ExtractCartAction pulls a structured add/remove payload out of a
	// manage-cart message.
	ExtractCartAction(ctx context.Context, message string, convCtx Context) (*CartAction, error)

	// SmallTalk phrases a short deflection for an off-topic message.
	SmallTalk(ctx context.Context, message string) (string, error)
}
