package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/ports"
)

// SandboxGateway is a stand-in payment adapter for environments without a
// real provider. It accepts every order and mints a local reference.
type SandboxGateway struct {
	logger *logrus.Logger
}

func NewSandboxGateway(logger *logrus.Logger) ports.PaymentGateway {
	return &SandboxGateway{logger: logger}
}

func (g *SandboxGateway) CreatePaymentOrder(ctx context.Context, orderNumber string, amount float64, currency string) (string, error) {
	ref := fmt.Sprintf("pay_sandbox_%s", uuid.New().String()[:12])
	if g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"order_number": orderNumber,
			"amount":       amount,
			"currency":     currency,
			"payment_ref":  ref,
		}).Info("sandbox payment order created")
	}
	return ref, nil
}
