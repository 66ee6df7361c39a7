package product

import (
	"time"

	"github.com/lib/pq"
)

// Product is a catalog entry. Sizes is the list of footwear sizes the
// product can be ordered in.
type Product struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Price     float64        `json:"price" db:"price"`
	ImageURL  string         `json:"image_url" db:"image_url"`
	Sizes     pq.StringArray `json:"sizes" db:"sizes"`
	InStock   bool           `json:"in_stock" db:"in_stock"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// HasSize reports whether the product is sold in the given size.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
