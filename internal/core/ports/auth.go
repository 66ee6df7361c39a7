package ports

import (
	"context"

	"github.com/stridewear/storefront-api/internal/core/domain/customer"
)

// AuthService handles login and access-token validation
type AuthService interface {
	Login(ctx context.Context, req *customer.LoginRequest) (*customer.AuthTokens, error)
	ValidateToken(tokenString string) (*customer.Claims, error)
}
