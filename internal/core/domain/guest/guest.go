package guest

import "time"

// CartItem is a single cart line held on behalf of an unauthenticated
// visitor. Identity is (ProductID, Size); at most one line exists per key.
type CartItem struct {
	ProductID    string    `json:"productId"`
	Size         string    `json:"size"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	ProductName  string    `json:"productName"`
	ProductImage string    `json:"productImage"`
	AddedAt      time.Time `json:"addedAt"`
}

// OrderTotals breaks down the amounts of a guest order.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Order is a provisional order created at guest checkout. It is immutable
// after creation; it only disappears when a sync succeeds or the visitor
// clears their data.
type Order struct {
	OrderNumber string      `json:"orderNumber"`
	Items       []CartItem  `json:"items"`
	Totals      OrderTotals `json:"totals"`
	CreatedAt   time.Time   `json:"createdAt"`
	IsGuest     bool        `json:"isGuest"`
}

// State is the full client-resident guest record: the cart plus the order
// history (newest first). All mutations go through the methods below so the
// (ProductID, Size) uniqueness invariant cannot be broken by callers.
type State struct {
	Cart   []CartItem `json:"cart"`
	Orders []Order    `json:"orders"`
}

// AddToCart merges item into the cart: an existing (ProductID, Size) line
// has its quantity incremented, otherwise a new line is appended stamped
// with the current time. Quantity validation is the caller's contract.
func (s *State) AddToCart(item CartItem) {
	for i := range s.Cart {
		if s.Cart[i].ProductID == item.ProductID && s.Cart[i].Size == item.Size {
			s.Cart[i].Quantity += item.Quantity
			return
		}
	}
	item.AddedAt = time.Now()
	s.Cart = append(s.Cart, item)
}

// RemoveFromCart removes the matching line; no-op when absent.
func (s *State) RemoveFromCart(productID, size string) {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID && s.Cart[i].Size == size {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the matching line; no-op when absent.
func (s *State) UpdateQuantity(productID, size string, quantity int) {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID && s.Cart[i].Size == size {
			s.Cart[i].Quantity = quantity
			return
		}
	}
}

// AddOrder prepends a new guest order, stamping it with the creation time
// and tagging it as guest-owned. The stored order is returned so callers can
// show a receipt without re-reading state.
func (s *State) AddOrder(o Order) Order {
	o.CreatedAt = time.Now()
	o.IsGuest = true
	s.Orders = append([]Order{o}, s.Orders...)
	return o
}

// FindOrderByNumber returns the first order with the given number, or false.
func (s *State) FindOrderByNumber(orderNumber string) (Order, bool) {
	for _, o := range s.Orders {
		if o.OrderNumber == orderNumber {
			return o, true
		}
	}
	return Order{}, false
}

// IsEmpty reports whether there is nothing to sync.
func (s *State) IsEmpty() bool {
	return len(s.Cart) == 0 && len(s.Orders) == 0
}

// SyncRequest is the payload posted to the account merge endpoint.
type SyncRequest struct {
	UserID      string     `json:"userId"`
	GuestCart   []CartItem `json:"guestCart"`
	GuestOrders []Order    `json:"guestOrders"`
}

// SyncResult reports the outcome of one merge attempt. Per-item failures
// are collected rather than aborting the merge.
type SyncResult struct {
	CartSynced   int      `json:"cartSynced"`
	OrdersSynced int      `json:"ordersSynced"`
	Errors       []string `json:"errors"`
}

// SyncResponse is the wire shape of a successful merge response.
type SyncResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Results SyncResult `json:"results"`
}
