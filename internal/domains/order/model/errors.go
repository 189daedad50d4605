package model

import "errors"

var (
	ErrEmptyCart           = errors.New("cannot create an order from an empty cart")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrMissingCustomerCity = errors.New("customer city is required")
)
