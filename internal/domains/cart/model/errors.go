package model

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotInCart     = errors.New("item is not in the cart")
)
