package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/core/domain/order"
	"github.com/stridewear/storefront-api/internal/core/ports"
	"github.com/stridewear/storefront-api/internal/infrastructure/db"
)

// MergeRepository applies guest state to account records with
// natural-identity upserts: cart lines conflict on (user_id, product_id,
// size) and orders on (user_id, order_number), both resolved with DO
// NOTHING. A replayed sync therefore inserts zero new rows instead of
// doubling quantities.
type MergeRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewMergeRepository(database *db.Database, logger *logrus.Logger) ports.MergeRepository {
	return &MergeRepository{
		db:     database,
		logger: logger,
	}
}

func (r *MergeRepository) UpsertCartItem(ctx context.Context, userID uuid.UUID, item guest.CartItem) (bool, error) {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, size, quantity, price, product_name, product_image, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, product_id, size) DO NOTHING`

	result, err := r.db.DB.ExecContext(ctx, query,
		uuid.New(), userID, item.ProductID, item.Size, item.Quantity,
		item.Price, item.ProductName, item.ProductImage, item.AddedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID, "product_id": item.ProductID, "size": item.Size}).WithError(err).Error("db: failed to upsert cart item")
		}
		return false, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *MergeRepository) UpsertOrder(ctx context.Context, o *order.Order) (bool, error) {
	query := `
		INSERT INTO orders (id, user_id, order_number, items, subtotal, shipping, total, status, is_guest, payment_ref, tracking_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id, order_number) DO NOTHING`

	result, err := r.db.DB.ExecContext(ctx, query,
		o.ID, o.UserID, o.OrderNumber, o.Items, o.Subtotal, o.Shipping,
		o.Total, o.Status, o.IsGuest, o.PaymentRef, o.TrackingRef, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": o.UserID, "order_number": o.OrderNumber}).WithError(err).Error("db: failed to upsert order")
		}
		return false, fmt.Errorf("failed to upsert order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
