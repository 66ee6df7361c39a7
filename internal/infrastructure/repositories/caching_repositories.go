package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stridewear/storefront-api/internal/core/domain/product"
	"github.com/stridewear/storefront-api/internal/core/ports"
)

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// CachingProductRepository decorates a ProductRepository with cache-aside.
// The catalog is read-heavy and changes rarely, so stale reads within the
// TTL are acceptable.
type CachingProductRepository struct {
	inner ports.ProductRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingProductRepository(inner ports.ProductRepository, cache ports.Cache, ttl time.Duration) ports.ProductRepository {
	return &CachingProductRepository{inner: inner, cache: cache, ttl: ttl}
}

func (r *CachingProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	key := "product:" + id
	if v, ok := cacheGet[product.Product](r.cache, ctx, key); ok {
		return v, nil
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheSetSilently(r.cache, ctx, key, p, r.ttl)
	return p, nil
}

func (r *CachingProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	key := fmt.Sprintf("products:%d:%d", limit, offset)
	if v, ok := cacheGet[[]*product.Product](r.cache, ctx, key); ok {
		return *v, nil
	}

	products, err := r.inner.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	cacheSetSilently(r.cache, ctx, key, products, r.ttl)
	return products, nil
}
