package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/product"
	"github.com/stridewear/storefront-api/internal/core/ports"
	"github.com/stridewear/storefront-api/internal/infrastructure/db"
)

// ProductRepository implements the catalog repository interface
type ProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &ProductRepository{
		db:     database,
		logger: logger,
	}
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	query := `
		SELECT id, name, price, image_url, sizes, in_stock, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"product_id": id}).WithError(err).Error("db: failed to get product")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// List retrieves catalog products with pagination
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	var products []*product.Product
	query := `
		SELECT id, name, price, image_url, sizes, in_stock, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2`

	err := r.db.DB.SelectContext(ctx, &products, query, limit, offset)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list products")
		}
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
