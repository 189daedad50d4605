package model

import (
	"fmt"
	"strings"
	"time"

	cartModel "shopbot-backend/internal/domains/cart/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a value copy of one cart line at checkout time. It shares
// nothing with the live cart, so later cart mutations cannot touch it.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is an immutable snapshot of a completed checkout. Created exactly
// once, at confirmation; never mutated afterward.
type Order struct {
	OrderNumber  string          `json:"order_number"`
	Items        []OrderItem     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CustomerName string          `json:"customer_name"`
	CustomerCity string          `json:"customer_city"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GenerateOrderNumber builds an order number from the creation timestamp
// plus a short uuid suffix as disambiguator: ORD-YYYYMMDD-HHMMSS-xxxxxx.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102-150405"), suffix)
}

// NewFromCart constructs the order snapshot for a checkout confirmation.
// The cart itself is left untouched; clearing it is the caller's step.
func NewFromCart(cart *cartModel.ShoppingCart, customerName, customerCity string) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	customerName = strings.TrimSpace(customerName)
	customerCity = strings.TrimSpace(customerCity)
	if customerName == "" {
		return nil, ErrMissingCustomerName
	}
	if customerCity == "" {
		return nil, ErrMissingCustomerCity
	}

	now := time.Now()
	items := make([]OrderItem, 0, len(cart.Items()))
	for _, line := range cart.Items() {
		items = append(items, OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		})
	}

	return &Order{
		OrderNumber:  GenerateOrderNumber(now),
		Items:        items,
		Total:        cart.Total(),
		CustomerName: customerName,
		CustomerCity: customerCity,
		CreatedAt:    now,
	}, nil
}

// ItemCount sums the quantities across order lines
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
