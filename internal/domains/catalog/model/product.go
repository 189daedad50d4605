package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Product represents a single entry in the store catalog.
// Products are immutable once loaded; the catalog owns them.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
}

// Validate validates product data loaded from the catalog source
func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Price, validation.Required, validation.By(validatePositivePrice)),
		validation.Field(&p.Stock, validation.Min(0)),
	)
}

func validatePositivePrice(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok || !price.GreaterThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	return nil
}

// HasStock checks whether the requested quantity can be served
func (p Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}
