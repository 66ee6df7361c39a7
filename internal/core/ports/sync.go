package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/core/domain/order"
)

// MergeRepository folds guest state into the account-owned records using
// natural-identity upserts, so a replayed sync never double-counts.
type MergeRepository interface {
	// UpsertCartItem merges one guest cart line into the user's cart keyed
	// by (user_id, product_id, size). inserted is false when the line was
	// already present from an earlier submission.
	UpsertCartItem(ctx context.Context, userID uuid.UUID, item guest.CartItem) (inserted bool, err error)
	// UpsertOrder merges one guest order keyed by (user_id, order_number).
	UpsertOrder(ctx context.Context, o *order.Order) (inserted bool, err error)
}

// SyncService is the server-side account merge surface.
type SyncService interface {
	// SyncGuestData applies the submitted guest cart and orders to the
	// user's account. Per-item failures are reported in the result, not
	// returned as an error; the call is safe to repeat.
	SyncGuestData(ctx context.Context, userID uuid.UUID, cart []guest.CartItem, orders []guest.Order) (*guest.SyncResult, error)
}
