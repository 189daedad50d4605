package repository

import (
	"context"
	"sync"

	"shopbot-backend/internal/domains/order/model"
)

// MemoryRepository keeps archived orders in process memory. Used when no
// database is configured, and as the test double.
type MemoryRepository struct {
	mu     sync.Mutex
	orders []*model.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return nil
}

// All returns the archived orders in save order
func (r *MemoryRepository) All() []*model.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Order, len(r.orders))
	copy(out, r.orders)
	return out
}
