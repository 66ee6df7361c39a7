package ports

import (
	"context"

	"github.com/stridewear/storefront-api/internal/core/domain/product"
)

// ProductRepository handles catalog persistence operations
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
	List(ctx context.Context, limit, offset int) ([]*product.Product, error)
}

// ProductService handles catalog reads
type ProductService interface {
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*product.Product, error)
}
