package ports

import "context"

// PaymentGateway is the boundary to the external payment provider. Only the
// shape of the exchange is owned here; the provider contract is external.
type PaymentGateway interface {
	// CreatePaymentOrder registers the order with the provider and returns
	// the provider's payment reference.
	CreatePaymentOrder(ctx context.Context, orderNumber string, amount float64, currency string) (string, error)
}
