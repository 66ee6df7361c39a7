package ports

import (
	"context"

	"github.com/stridewear/storefront-api/internal/core/domain/order"
)

// ShippingProvider is the boundary to the external shipping carrier.
type ShippingProvider interface {
	// CreateShipment books a shipment for the order and returns the
	// carrier's tracking reference.
	CreateShipment(ctx context.Context, orderNumber string, addr order.Address) (string, error)
}
