package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using a
	// compare-and-set against the version the aggregate was loaded with.
	// Returns a StaleStateError when a concurrent writer advanced the
	// record first; the caller should refetch and decide whether to retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetExpiredPendingPayment retrieves orders still awaiting payment whose
	// placement time is at or before the deadline. Used by the expiry sweep.
	GetExpiredPendingPayment(ctx context.Context, deadline time.Time) ([]*order.Order, error)
}
