package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/order"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

type OrderService struct {
	repo     ports.OrderRepository
	payments ports.PaymentGateway
	shipping ports.ShippingProvider
	logger   *logrus.Logger
}

func NewOrderService(repo ports.OrderRepository, payments ports.PaymentGateway, shipping ports.ShippingProvider, logger *logrus.Logger) ports.OrderService {
	return &OrderService{
		repo:     repo,
		payments: payments,
		shipping: shipping,
		logger:   logger,
	}
}

// Checkout creates an account order: a payment order is registered with the
// gateway and a shipment is booked with the carrier before the record is
// persisted. Provider failures abort the checkout; nothing is persisted.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	var subtotal float64
	for _, it := range req.Items {
		if it.ProductID == "" || it.Size == "" || it.Quantity < 1 {
			return nil, fmt.Errorf("invalid order item %q/%q", it.ProductID, it.Size)
		}
		subtotal += it.Price * float64(it.Quantity)
	}

	o := &order.Order{
		ID:          uuid.New(),
		UserID:      userID,
		OrderNumber: newOrderNumber(),
		Items:       req.Items,
		Subtotal:    subtotal,
		Shipping:    req.Shipping,
		Total:       subtotal + req.Shipping,
		Status:      order.StatusPending,
		IsGuest:     false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	paymentRef, err := s.payments.CreatePaymentOrder(ctx, o.OrderNumber, o.Total, "USD")
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}
	o.PaymentRef = &paymentRef
	o.Status = order.StatusPaid

	trackingRef, err := s.shipping.CreateShipment(ctx, o.OrderNumber, req.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}
	o.TrackingRef = &trackingRef

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "order_number": o.OrderNumber, "total": o.Total}).Info("order created")
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *OrderService) GetOrder(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, fmt.Errorf("order number is required")
	}
	return s.repo.GetByNumber(ctx, userID, orderNumber)
}

// newOrderNumber builds a human-readable unique order number.
func newOrderNumber() string {
	return fmt.Sprintf("SW-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}
