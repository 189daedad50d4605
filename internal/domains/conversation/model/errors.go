package model

import "errors"

// Error codes carried by ConversationError. Every condition here is
// recoverable: it is reported to the user and the turn ends without
// mutation.
const (
	ErrCodeNotFound                  = "NOT_FOUND"
	ErrCodeIndexOutOfRange           = "INDEX_OUT_OF_RANGE"
	ErrCodeNoContext                 = "NO_CONTEXT"
	ErrCodeInsufficientStock         = "INSUFFICIENT_STOCK"
	ErrCodeItemNotInCart             = "ITEM_NOT_IN_CART"
	ErrCodeEmptyCart                 = "EMPTY_CART"
	ErrCodeExtractionFailed          = "EXTRACTION_FAILED"
	ErrCodeClassificationUnavailable = "CLASSIFICATION_UNAVAILABLE"
	ErrCodeCatalogUnavailable        = "CATALOG_UNAVAILABLE"
)

var (
	ErrNotFound                  = errors.New("product reference did not match any product")
	ErrIndexOutOfRange           = errors.New("list index is out of range")
	ErrNoContext                 = errors.New("no last-mentioned product in this conversation")
	ErrExtractionFailed          = errors.New("could not extract a cart action from the message")
	ErrClassificationUnavailable = errors.New("intent classification is unavailable")
	ErrCorruptedState            = errors.New("conversation state is corrupted")
)

// ConversationError pairs a machine-readable code with the user-facing
// message a handler produced for it.
type ConversationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ConversationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConversationError) Unwrap() error {
	return e.Err
}

func NewConversationError(code, message string, err error) *ConversationError {
	return &ConversationError{Code: code, Message: message, Err: err}
}
