package model

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidPrice       = errors.New("price must be greater than zero")
	ErrCatalogUnavailable = errors.New("catalog is unavailable")
)
