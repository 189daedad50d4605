package repository

import (
	"context"

	"shopbot-backend/internal/domains/order/model"
)

// RepositoryInterface archives completed orders. The conversation engine
// never calls it directly; the chat service archives after a turn that
// produced an order.
type RepositoryInterface interface {
	Save(ctx context.Context, order *model.Order) error
}
