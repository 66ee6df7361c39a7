package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridewear/storefront-api/internal/core/domain/order"
)

// OrderRepository handles account order persistence operations
type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	GetByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error)
}

// OrderService handles authenticated checkout and order history
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	// GetOrder looks up one of the user's orders by its order number,
	// covering both checkout orders and merged guest orders.
	GetOrder(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error)
}
