package kiosk_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/kiosk"
)

func newTestStore(t *testing.T) (*kiosk.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := kiosk.NewStore(dir, nil)
	require.NoError(t, err)
	return store, dir
}

func TestStore_AddToCart_MergesSameProductAndSize(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 1, Price: 89.99}))
	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 2, Price: 89.99}))

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
	assert.False(t, cart[0].AddedAt.IsZero())
}

func TestStore_AddToCart_DifferentSizeIsSeparateLine(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 1}))
	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "43", Quantity: 1}))

	assert.Len(t, store.Cart(), 2)
}

func TestStore_RemoveFromCart_RemovesOnlyMatchingLine(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 1}))
	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "43", Quantity: 1}))

	require.NoError(t, store.RemoveFromCart("sneaker-01", "42"))

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "43", cart[0].Size)

	// Removing an absent line is a no-op.
	require.NoError(t, store.RemoveFromCart("sneaker-99", "40"))
	assert.Len(t, store.Cart(), 1)
}

func TestStore_PersistsAcrossReload(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "runner-07", Size: "44", Quantity: 2, Price: 120}))
	_, err := store.AddOrder(guest.Order{
		OrderNumber: "SW-20260901-abc123",
		Items:       []guest.CartItem{{ProductID: "runner-07", Size: "44", Quantity: 2, Price: 120}},
		Totals:      guest.OrderTotals{Subtotal: 240, Shipping: 0, Total: 240},
	})
	require.NoError(t, err)

	reloaded, err := kiosk.NewStore(dir, nil)
	require.NoError(t, err)

	cart := reloaded.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "runner-07", cart[0].ProductID)
	assert.Equal(t, 2, cart[0].Quantity)

	orders := reloaded.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "SW-20260901-abc123", orders[0].OrderNumber)
	assert.True(t, orders[0].IsGuest)
}

func TestStore_CorruptStateFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guest-cart.json"), []byte("{not json"), 0o644))

	store, err := kiosk.NewStore(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, store.Cart())
	assert.True(t, store.IsEmpty())
}

func TestStore_ClearRemovesStateFiles(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 1}))
	_, err := store.AddOrder(guest.Order{OrderNumber: "SW-1"})
	require.NoError(t, err)

	require.NoError(t, store.ClearCart())
	require.NoError(t, store.ClearOrders())

	assert.True(t, store.IsEmpty())
	_, err = os.Stat(filepath.Join(dir, "guest-cart.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "guest-orders.json"))
	assert.True(t, os.IsNotExist(err))

	// A second clear on already-removed files is not an error.
	require.NoError(t, store.ClearCart())
	require.NoError(t, store.ClearOrders())
}

func TestStore_AddOrder_StampsAndPrepends(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.AddOrder(guest.Order{OrderNumber: "SW-1"})
	require.NoError(t, err)
	assert.True(t, first.IsGuest)
	assert.WithinDuration(t, time.Now(), first.CreatedAt, 5*time.Second)

	_, err = store.AddOrder(guest.Order{OrderNumber: "SW-2"})
	require.NoError(t, err)

	orders := store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "SW-2", orders[0].OrderNumber)
	assert.Equal(t, "SW-1", orders[1].OrderNumber)

	got, ok := store.FindOrderByNumber("SW-1")
	require.True(t, ok)
	assert.Equal(t, "SW-1", got.OrderNumber)
}

func TestStore_UpdateQuantity(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 1}))
	require.NoError(t, store.UpdateQuantity("sneaker-01", "42", 5))

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}
