package kiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
)

// SyncState is the per-login-session state of the coordinator.
type SyncState string

const (
	// SyncIdle means no sync has succeeded yet; a qualifying trigger fires.
	SyncIdle SyncState = "idle"
	// SyncInFlight guards against re-entrant triggers while a call runs.
	SyncInFlight SyncState = "syncing"
	// SyncDone suppresses further triggers for the rest of the session.
	SyncDone SyncState = "synced"
)

// SyncCoordinator transfers guest-held state into the account record once
// per login session. Triggers are level-checked: a failed attempt returns
// the coordinator to idle so the next qualifying trigger retries the full
// sync from scratch; the server merge tolerates re-submission.
type SyncCoordinator struct {
	store   *Store
	baseURL string
	client  *http.Client
	logger  *logrus.Logger

	mu    sync.Mutex
	state SyncState
}

// NewSyncCoordinator builds a coordinator posting to baseURL. timeout
// bounds each merge call so a hung request cannot wedge the syncing state.
func NewSyncCoordinator(store *Store, baseURL string, timeout time.Duration, logger *logrus.Logger) *SyncCoordinator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SyncCoordinator{
		store:   store,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		state:   SyncIdle,
	}
}

// State returns the current session sync state.
func (c *SyncCoordinator) State() SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns the coordinator to idle for a fresh login session.
func (c *SyncCoordinator) Reset() {
	c.mu.Lock()
	c.state = SyncIdle
	c.mu.Unlock()
}

// TriggerSync fires one sync attempt when all conditions hold: a user is
// authenticated (userID and token present), the session has not already
// synced or started syncing, and there is guest data to transfer. Any
// non-qualifying call is a silent no-op so callers may invoke it on every
// relevant state change. On success both local collections are cleared; on
// any failure local state is left fully intact and the error is returned
// for logging, never to block the user.
func (c *SyncCoordinator) TriggerSync(ctx context.Context, userID, token string) error {
	c.mu.Lock()
	if c.state != SyncIdle || userID == "" || token == "" || c.store.IsEmpty() {
		c.mu.Unlock()
		return nil
	}
	c.state = SyncInFlight
	c.mu.Unlock()

	result, err := c.postGuestData(ctx, userID, token)
	if err != nil {
		c.mu.Lock()
		c.state = SyncIdle
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Warn("guest sync failed, will retry on next trigger")
		}
		return err
	}

	// Clear local state only after the server confirmed the merge. A clear
	// failure is logged but does not undo the synced state: the server
	// already owns the data and a re-submission is harmless.
	if err := c.store.ClearCart(); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("guest sync: failed to clear cart file")
	}
	if err := c.store.ClearOrders(); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("guest sync: failed to clear orders file")
	}

	c.mu.Lock()
	c.state = SyncDone
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"user_id":       userID,
			"cart_synced":   result.CartSynced,
			"orders_synced": result.OrdersSynced,
		}).Info("guest data synced to account")
	}
	return nil
}

func (c *SyncCoordinator) postGuestData(ctx context.Context, userID, token string) (*guest.SyncResult, error) {
	payload := guest.SyncRequest{
		UserID:      userID,
		GuestCart:   c.store.Cart(),
		GuestOrders: c.store.Orders(),
	}

	body, err := json.Marshal(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sync request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/sync-guest-data", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("sync rejected with status %d: %s", resp.StatusCode, string(b))
	}

	var out guest.SyncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode sync response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("sync not confirmed by server: %s", out.Message)
	}
	return &out.Results, nil
}
