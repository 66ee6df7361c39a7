package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/core/domain/order"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

type SyncService struct {
	mergeRepo ports.MergeRepository
	logger    *logrus.Logger
}

func NewSyncService(mergeRepo ports.MergeRepository, logger *logrus.Logger) ports.SyncService {
	return &SyncService{
		mergeRepo: mergeRepo,
		logger:    logger,
	}
}

// SyncGuestData folds the submitted guest cart and orders into the user's
// account records. Each item is merged by its natural identity (cart lines
// by product+size, orders by order number), so the same submission can be
// replayed by a retrying client without double-counting. Per-item failures
// are collected in the result rather than aborting the rest of the merge.
func (s *SyncService) SyncGuestData(ctx context.Context, userID uuid.UUID, cart []guest.CartItem, orders []guest.Order) (*guest.SyncResult, error) {
	result := &guest.SyncResult{Errors: []string{}}

	for _, item := range cart {
		if item.ProductID == "" || item.Size == "" || item.Quantity < 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("cart item %q/%q: invalid item", item.ProductID, item.Size))
			guestSyncItemsTotal.WithLabelValues("cart", "invalid").Inc()
			continue
		}
		if _, err := s.mergeRepo.UpsertCartItem(ctx, userID, item); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"user_id": userID, "product_id": item.ProductID, "size": item.Size}).WithError(err).Error("failed to merge guest cart item")
			}
			result.Errors = append(result.Errors, fmt.Sprintf("cart item %s/%s: %v", item.ProductID, item.Size, err))
			guestSyncItemsTotal.WithLabelValues("cart", "error").Inc()
			continue
		}
		result.CartSynced++
		guestSyncItemsTotal.WithLabelValues("cart", "merged").Inc()
	}

	for _, g := range orders {
		if g.OrderNumber == "" {
			result.Errors = append(result.Errors, "guest order without order number")
			guestSyncItemsTotal.WithLabelValues("order", "invalid").Inc()
			continue
		}
		if _, err := s.mergeRepo.UpsertOrder(ctx, guestOrderToAccountOrder(userID, g)); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"user_id": userID, "order_number": g.OrderNumber}).WithError(err).Error("failed to merge guest order")
			}
			result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", g.OrderNumber, err))
			guestSyncItemsTotal.WithLabelValues("order", "error").Inc()
			continue
		}
		result.OrdersSynced++
		guestSyncItemsTotal.WithLabelValues("order", "merged").Inc()
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":       userID,
			"cart_synced":   result.CartSynced,
			"orders_synced": result.OrdersSynced,
			"errors":        len(result.Errors),
		}).Info("guest data merge completed")
	}

	return result, nil
}

// guestOrderToAccountOrder rebinds a provisional guest order to the account
// record shape, keeping the original order number and creation time.
func guestOrderToAccountOrder(userID uuid.UUID, g guest.Order) *order.Order {
	items := make(order.Items, 0, len(g.Items))
	for _, it := range g.Items {
		items = append(items, order.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &order.Order{
		ID:          uuid.New(),
		UserID:      userID,
		OrderNumber: g.OrderNumber,
		Items:       items,
		Subtotal:    g.Totals.Subtotal,
		Shipping:    g.Totals.Shipping,
		Total:       g.Totals.Total,
		Status:      order.StatusPaid,
		IsGuest:     true,
		CreatedAt:   createdAt,
		UpdatedAt:   time.Now(),
	}
}
