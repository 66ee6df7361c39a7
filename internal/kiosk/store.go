package kiosk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
)

const (
	cartFile   = "guest-cart.json"
	ordersFile = "guest-orders.json"
)

// Store keeps the guest cart and order history for one device, persisted
// under a profile directory so the state survives restarts. It is the
// device-local analogue of browser storage: never shared across devices,
// cleared only after a confirmed sync or an explicit clear.
type Store struct {
	dir    string
	logger *logrus.Logger

	mu    sync.Mutex
	state guest.State
}

// NewStore loads existing state from dir, creating dir if needed. Corrupt
// or missing state files are treated as empty state, never as an error.
func NewStore(dir string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create guest state dir: %w", err)
	}

	s := &Store{dir: dir, logger: logger}
	decodeOrEmpty(filepath.Join(dir, cartFile), &s.state.Cart, logger)
	decodeOrEmpty(filepath.Join(dir, ordersFile), &s.state.Orders, logger)
	return s, nil
}

// decodeOrEmpty reads a JSON state file into out, leaving out untouched
// (empty) when the file is missing or unparseable. Corrupt client state
// must never take the shopping experience down, so parse failures are
// logged and swallowed.
func decodeOrEmpty(path string, out interface{}, logger *logrus.Logger) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(b, out); err != nil && logger != nil {
		logger.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("guest: corrupt state file, starting empty")
	}
}

// AddToCart merges the item into the cart and persists.
func (s *Store) AddToCart(item guest.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.AddToCart(item)
	return s.persistCart()
}

// RemoveFromCart removes the matching line and persists; no-op when absent.
func (s *Store) RemoveFromCart(productID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.RemoveFromCart(productID, size)
	return s.persistCart()
}

// UpdateQuantity replaces the quantity of the matching line and persists.
func (s *Store) UpdateQuantity(productID, size string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UpdateQuantity(productID, size, quantity)
	return s.persistCart()
}

// ClearCart empties the cart and removes its persisted file entirely so
// storage does not accumulate empty markers.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Cart = nil
	return s.removeFile(cartFile)
}

// ClearOrders empties the order history and removes its persisted file.
func (s *Store) ClearOrders() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Orders = nil
	return s.removeFile(ordersFile)
}

// AddOrder prepends the order (stamped and tagged as guest) and persists.
// The stored order is returned for receipt display.
func (s *Store) AddOrder(o guest.Order) (guest.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.state.AddOrder(o)
	return stored, s.persistOrders()
}

// FindOrderByNumber returns the first order with the given number.
func (s *Store) FindOrderByNumber(orderNumber string) (guest.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.FindOrderByNumber(orderNumber)
}

// Cart returns a snapshot of the current cart.
func (s *Store) Cart() []guest.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]guest.CartItem, len(s.state.Cart))
	copy(out, s.state.Cart)
	return out
}

// Orders returns a snapshot of the order history, newest first.
func (s *Store) Orders() []guest.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]guest.Order, len(s.state.Orders))
	copy(out, s.state.Orders)
	return out
}

// IsEmpty reports whether there is nothing to sync.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.IsEmpty()
}

func (s *Store) persistCart() error {
	return s.writeFile(cartFile, s.state.Cart)
}

func (s *Store) persistOrders() error {
	return s.writeFile(ordersFile, s.state.Orders)
}

func (s *Store) writeFile(name string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode guest state: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write guest state file: %w", err)
	}
	return nil
}

func (s *Store) removeFile(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove guest state file: %w", err)
	}
	return nil
}
