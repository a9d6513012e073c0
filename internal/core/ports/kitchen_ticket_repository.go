package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
)

// KitchenTicketRepository defines the persistence contract for kitchen
// tickets. A ticket is keyed by the order it tracks; one order has at most
// one ticket.
type KitchenTicketRepository interface {
	// Add persists a new kitchen ticket to storage.
	Add(ctx context.Context, aggregate *kitchen.Ticket) error

	// Update persists changes to an existing ticket using a compare-and-set
	// against the version the aggregate was loaded with. Returns a
	// StaleStateError when a concurrent writer advanced the record first.
	Update(ctx context.Context, aggregate *kitchen.Ticket) error

	// UpdateItemStatus advances a single line item from one status to the
	// next, compare-and-setting on that item's current status rather than on
	// the ticket version. Cooks working different items on the same ticket
	// therefore never contend; only a concurrent writer of the same item, or
	// a hand-off that closed the ticket, makes this stale. Returns the new
	// ticket version.
	UpdateItemStatus(ctx context.Context, orderID, menuItemID kernel.UUID,
		from, to kitchen.ItemStatus) (int, error)

	// GetByOrderID retrieves the ticket tracking the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*kitchen.Ticket, error)
}
