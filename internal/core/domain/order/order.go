package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusPaid    OrderStatus = "paid"
	StatusShipped OrderStatus = "shipped"
)

// Item is one line of a persisted order.
type Item struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Items is stored as a JSONB column.
type Items []Item

func (i Items) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *Items) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported items column type %T", src)
	}
	return json.Unmarshal(b, i)
}

// Order is an account-owned order record. Orders merged from a guest
// session keep their original order number and are flagged IsGuest so
// support can tell them apart from authenticated checkouts.
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	OrderNumber string      `json:"order_number" db:"order_number"`
	Items       Items       `json:"items" db:"items"`
	Subtotal    float64     `json:"subtotal" db:"subtotal"`
	Shipping    float64     `json:"shipping" db:"shipping"`
	Total       float64     `json:"total" db:"total"`
	Status      OrderStatus `json:"status" db:"status"`
	IsGuest     bool        `json:"is_guest" db:"is_guest"`
	PaymentRef  *string     `json:"payment_ref,omitempty" db:"payment_ref"`
	TrackingRef *string     `json:"tracking_ref,omitempty" db:"tracking_ref"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateOrderRequest represents an authenticated checkout request.
type CreateOrderRequest struct {
	Items    []Item  `json:"items" validate:"required,min=1"`
	Shipping float64 `json:"shipping"`
	Address  Address `json:"address" validate:"required"`
}

// Address is the shipping destination passed to the carrier boundary.
type Address struct {
	Line1      string `json:"line1" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}
