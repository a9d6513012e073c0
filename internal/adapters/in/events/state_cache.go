// Package events contains the consuming side of the state change feed: a
// reconciling cache that client-facing processes keep warm from the NATS
// subjects. Push delivery is at-most-once, so the cache trusts versions, not
// arrival order, and falls back to refetching whenever the feed looks lossy.
package events

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/ports"
)

// OrderSnapshot is the last known state of one order.
type OrderSnapshot struct {
	State   string
	Version int
}

// FetchFunc retrieves the authoritative state of a single order, typically
// through the read API.
type FetchFunc func(ctx context.Context, orderID string) (OrderSnapshot, error)

// OrderStateCache holds the last applied snapshot per order. An envelope is
// applied only when its version exceeds the cached one; older or duplicate
// deliveries are discarded. A version jumping more than one step ahead means
// deliveries were dropped, so the cache refetches instead of trusting the
// envelope alone.
type OrderStateCache struct {
	mu     sync.RWMutex
	states map[string]OrderSnapshot

	fetch  FetchFunc
	logger *slog.Logger
}

// NewOrderStateCache creates an empty cache. fetch may be nil, in which case
// gaps are filled from the envelope itself.
func NewOrderStateCache(fetch FetchFunc, logger *slog.Logger) *OrderStateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStateCache{
		states: make(map[string]OrderSnapshot),
		fetch:  fetch,
		logger: logger.With("component", "order_state_cache"),
	}
}

// Apply folds one envelope into the cache. It reports whether the envelope
// advanced the cached state; stale and duplicate deliveries return false.
func (c *OrderStateCache) Apply(ctx context.Context, event ports.StateChangedEvent) bool {
	if event.EntityType != "order" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cached, known := c.states[event.OrderID]
	if known && event.Version <= cached.Version {
		c.logger.DebugContext(ctx, "discarded stale event",
			"order_id", event.OrderID,
			"event_version", event.Version,
			"cached_version", cached.Version,
		)
		return false
	}

	snapshot := OrderSnapshot{State: event.NewState, Version: event.Version}

	// A hole in the version sequence means deliveries were lost in between.
	// The envelope is still the newest thing we have, so on refetch failure
	// it is applied as-is.
	gap := known && event.Version > cached.Version+1
	if (gap || !known) && c.fetch != nil {
		fetched, err := c.fetch(ctx, event.OrderID)
		if err != nil {
			c.logger.WarnContext(ctx, "refetch failed, applying envelope",
				"order_id", event.OrderID,
				"error", err,
			)
		} else if fetched.Version >= snapshot.Version {
			snapshot = fetched
		}
	}

	c.states[event.OrderID] = snapshot
	return true
}

// Reconcile overwrites cached entries with authoritative snapshots, keeping a
// cached entry when it is already newer than what the resync returned.
func (c *OrderStateCache) Reconcile(snapshots map[string]OrderSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for orderID, snapshot := range snapshots {
		if cached, ok := c.states[orderID]; ok && cached.Version > snapshot.Version {
			continue
		}
		c.states[orderID] = snapshot
	}
}

// Get returns the cached snapshot for an order.
func (c *OrderStateCache) Get(orderID string) (OrderSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot, ok := c.states[orderID]
	return snapshot, ok
}

// Forget drops an order from the cache, for consumers that evict terminal
// orders.
func (c *OrderStateCache) Forget(orderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.states, orderID)
}

// Len returns the number of cached orders.
func (c *OrderStateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.states)
}
