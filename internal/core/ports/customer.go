package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridewear/storefront-api/internal/core/domain/customer"
)

// CustomerRepository handles customer persistence operations
type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
	Update(ctx context.Context, c *customer.Customer) error
}

// CustomerService handles customer account business logic
type CustomerService interface {
	Register(ctx context.Context, req *customer.RegisterRequest) (*customer.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	// MarkEmailVerified flips the verified flag after a successful OTP check.
	MarkEmailVerified(ctx context.Context, email string) error
}
