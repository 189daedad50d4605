package model

import (
	catalogModel "shopbot-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
)

// CartItem is one product line in the cart. The product is a snapshot of
// the catalog entry at the time it was added.
type CartItem struct {
	Product  catalogModel.Product `json:"product"`
	Quantity int                  `json:"quantity"`
}

// Subtotal calculates price * quantity. Always derived, never stored.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// ShoppingCart holds the items of one live session, in insertion order,
// unique by product id. Quantities merge instead of duplicating lines.
//
// The cart is not safe for concurrent use; the session owner serializes
// turns.
type ShoppingCart struct {
	Entries []CartItem `json:"items"`
}

func NewShoppingCart() *ShoppingCart {
	return &ShoppingCart{}
}

func (c *ShoppingCart) index(productID string) int {
	for i := range c.Entries {
		if c.Entries[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity units of product into the cart, merging with an
// existing line. Stock is checked against the merged quantity so a
// second add cannot oversell.
func (c *ShoppingCart) Add(product catalogModel.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if idx := c.index(product.ID); idx >= 0 {
		merged := c.Entries[idx].Quantity + quantity
		if !product.HasStock(merged) {
			return ErrInsufficientStock
		}
		c.Entries[idx].Quantity = merged
		return nil
	}

	if !product.HasStock(quantity) {
		return ErrInsufficientStock
	}
	c.Entries = append(c.Entries, CartItem{Product: product, Quantity: quantity})
	return nil
}

// Remove takes quantity units of a product out of the cart. Removing at
// least the current quantity drops the line entirely; the cart never
// holds a zero-quantity entry.
func (c *ShoppingCart) Remove(productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	idx := c.index(productID)
	if idx < 0 {
		return ErrItemNotInCart
	}

	if quantity >= c.Entries[idx].Quantity {
		c.Entries = append(c.Entries[:idx], c.Entries[idx+1:]...)
		return nil
	}

	c.Entries[idx].Quantity -= quantity
	return nil
}

// Item returns the cart line for a product, or nil if absent
func (c *ShoppingCart) Item(productID string) *CartItem {
	if idx := c.index(productID); idx >= 0 {
		item := c.Entries[idx]
		return &item
	}
	return nil
}

// Has reports whether the product is in the cart
func (c *ShoppingCart) Has(productID string) bool {
	return c.index(productID) >= 0
}

// Total recomputes the cart total from current items
func (c *ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Entries {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount sums the quantities of all lines
func (c *ShoppingCart) ItemCount() int {
	count := 0
	for _, item := range c.Entries {
		count += item.Quantity
	}
	return count
}

func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Entries) == 0
}

func (c *ShoppingCart) Clear() {
	c.Entries = nil
}

// Items returns a copy of the cart lines in insertion order
func (c *ShoppingCart) Items() []CartItem {
	out := make([]CartItem, len(c.Entries))
	copy(out, c.Entries)
	return out
}
