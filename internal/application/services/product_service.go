package services

import (
	"context"

	"github.com/stridewear/storefront-api/internal/core/domain/product"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

type ProductService struct {
	repo ports.ProductRepository
}

func NewProductService(repo ports.ProductRepository) ports.ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	return s.repo.List(ctx, limit, offset)
}
