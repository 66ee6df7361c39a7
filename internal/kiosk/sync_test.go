package kiosk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/kiosk"
)

func seedStore(t *testing.T) *kiosk.Store {
	t.Helper()
	store, _ := newTestStore(t)
	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-01", Size: "42", Quantity: 2, Price: 89.99}))
	_, err := store.AddOrder(guest.Order{OrderNumber: "SW-20260901-abc123", Totals: guest.OrderTotals{Total: 179.98}})
	require.NoError(t, err)
	return store
}

func syncServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestTriggerSync_SuccessClearsLocalState(t *testing.T) {
	store := seedStore(t)

	var gotAuth string
	var gotReq guest.SyncRequest
	srv := syncServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sync-guest-data", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(guest.SyncResponse{
			Success: true,
			Message: "Guest data synced successfully",
			Results: guest.SyncResult{CartSynced: 1, OrdersSynced: 1},
		})
	})

	c := kiosk.NewSyncCoordinator(store, srv.URL, time.Second, nil)
	require.NoError(t, c.TriggerSync(context.Background(), "user-1", "tok"))

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "user-1", gotReq.UserID)
	assert.Len(t, gotReq.GuestCart, 1)
	assert.Len(t, gotReq.GuestOrders, 1)

	assert.True(t, store.IsEmpty())
	assert.Equal(t, kiosk.SyncDone, c.State())
}

func TestTriggerSync_FiresOncePerSession(t *testing.T) {
	store := seedStore(t)

	calls := 0
	srv := syncServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(guest.SyncResponse{Success: true})
	})

	c := kiosk.NewSyncCoordinator(store, srv.URL, time.Second, nil)
	require.NoError(t, c.TriggerSync(context.Background(), "user-1", "tok"))

	// New guest activity after the session synced must not re-fire until
	// the coordinator is reset for a fresh session.
	require.NoError(t, store.AddToCart(guest.CartItem{ProductID: "sneaker-02", Size: "41", Quantity: 1}))
	require.NoError(t, c.TriggerSync(context.Background(), "user-1", "tok"))
	assert.Equal(t, 1, calls)

	c.Reset()
	require.NoError(t, c.TriggerSync(context.Background(), "user-1", "tok"))
	assert.Equal(t, 2, calls)
}

func TestTriggerSync_NoOpWithoutAuthOrData(t *testing.T) {
	store := seedStore(t)
	srv := syncServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called")
	})
	c := kiosk.NewSyncCoordinator(store, srv.URL, time.Second, nil)

	require.NoError(t, c.TriggerSync(context.Background(), "", "tok"))
	require.NoError(t, c.TriggerSync(context.Background(), "user-1", ""))
	assert.Equal(t, kiosk.SyncIdle, c.State())

	empty, _ := newTestStore(t)
	c2 := kiosk.NewSyncCoordinator(empty, srv.URL, time.Second, nil)
	require.NoError(t, c2.TriggerSync(context.Background(), "user-1", "tok"))
	assert.Equal(t, kiosk.SyncIdle, c2.State())
}

func TestTriggerSync_FailureKeepsLocalStateAndRetries(t *testing.T) {
	store := seedStore(t)

	calls := 0
	srv := syncServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, `{"error":"failed to sync guest data"}`, http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(guest.SyncResponse{Success: true})
	})

	c := kiosk.NewSyncCoordinator(store, srv.URL, time.Second, nil)

	err := c.TriggerSync(context.Background(), "user-1", "tok")
	require.Error(t, err)
	assert.False(t, store.IsEmpty())
	assert.Equal(t, kiosk.SyncIdle, c.State())

	// Next qualifying trigger retries the full sync from scratch.
	require.NoError(t, c.TriggerSync(context.Background(), "user-1", "tok"))
	assert.Equal(t, 2, calls)
	assert.True(t, store.IsEmpty())
	assert.Equal(t, kiosk.SyncDone, c.State())
}

func TestTriggerSync_UnconfirmedResponseIsFailure(t *testing.T) {
	store := seedStore(t)
	srv := syncServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(guest.SyncResponse{Success: false, Message: "partial failure"})
	})

	c := kiosk.NewSyncCoordinator(store, srv.URL, time.Second, nil)
	err := c.TriggerSync(context.Background(), "user-1", "tok")
	require.Error(t, err)
	assert.False(t, store.IsEmpty())
	assert.Equal(t, kiosk.SyncIdle, c.State())
}
