package repository

import (
	"context"
	"fmt"

	"shopbot-backend/internal/domains/order/model"
	"shopbot-backend/internal/infrastructure/database"
)

// PostgresRepository archives orders into Postgres. Schema:
//
//	orders(order_number PK, customer_name, customer_city, total, created_at)
//	order_items(order_number FK, product_id, product_name, unit_price, quantity, subtotal)
type PostgresRepository struct {
	db *database.PostgresDB
}

func NewPostgresRepository(db *database.PostgresDB) RepositoryInterface {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, order *model.Order) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (order_number, customer_name, customer_city, total, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		order.OrderNumber, order.CustomerName, order.CustomerCity, order.Total, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderNumber, err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_number, product_id, product_name, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.OrderNumber, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order %s: %w", order.OrderNumber, err)
	}

	return nil
}
