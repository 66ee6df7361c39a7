package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/order"
	"github.com/stridewear/storefront-api/internal/core/ports"
	"github.com/stridewear/storefront-api/internal/infrastructure/db"
)

// OrderRepository implements the order repository interface
type OrderRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(database *db.Database, logger *logrus.Logger) ports.OrderRepository {
	return &OrderRepository{
		db:     database,
		logger: logger,
	}
}

// Create persists a new account order
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (id, user_id, order_number, items, subtotal, shipping, total, status, is_guest, payment_ref, tracking_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.DB.ExecContext(ctx, query,
		o.ID, o.UserID, o.OrderNumber, o.Items, o.Subtotal, o.Shipping,
		o.Total, o.Status, o.IsGuest, o.PaymentRef, o.TrackingRef, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": o.UserID, "order_number": o.OrderNumber}).WithError(err).Error("db: failed to create order")
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's orders, newest first, with pagination
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	var orders []*order.Order
	query := `
		SELECT id, user_id, order_number, items, subtotal, shipping, total, status, is_guest, payment_ref, tracking_ref, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &orders, query, userID, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to list orders")
		}
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// GetByNumber retrieves one of the user's orders by its order number
func (r *OrderRepository) GetByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error) {
	var o order.Order
	query := `
		SELECT id, user_id, order_number, items, subtotal, shipping, total, status, is_guest, payment_ref, tracking_ref, created_at, updated_at
		FROM orders
		WHERE user_id = $1 AND order_number = $2`

	err := r.db.DB.GetContext(ctx, &o, query, userID, orderNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order %s not found", orderNumber)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID, "order_number": orderNumber}).WithError(err).Error("db: failed to get order")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &o, nil
}
