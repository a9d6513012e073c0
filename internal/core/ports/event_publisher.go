package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
)

// StateChangedEvent is the envelope published for every accepted state
// transition. Consumers reconcile with it: the version lets a client discard
// stale or reordered deliveries, and the envelope deliberately carries only
// identity and the new state so consumers refetch details on demand.
type StateChangedEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OrderID    string    `json:"order_id"`
	NewState   string    `json:"new_state"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`

	// RiderID routes a copy of the event to the rider channel once an order
	// has a rider assigned. Empty otherwise.
	RiderID string `json:"rider_id,omitempty"`

	// Kitchen routes a copy of the event to the kitchen channel.
	Kitchen bool `json:"-"`
}

// NewOrderStateEvent builds the envelope for an order status change.
func NewOrderStateEvent(o *order.Order, occurredAt time.Time) StateChangedEvent {
	event := StateChangedEvent{
		EntityType: "order",
		EntityID:   o.ID().String(),
		OrderID:    o.ID().String(),
		NewState:   o.Status().String(),
		Version:    o.Version(),
		OccurredAt: occurredAt,
		Kitchen:    o.Status().IsKitchenActive(),
	}
	if rider := o.Rider(); rider != nil {
		event.RiderID = rider.String()
	}
	return event
}

// NewTicketStateEvent builds the envelope for a kitchen ticket change. The
// new state carries the derived aggregate status; per-item detail is left to
// consumers to refetch.
func NewTicketStateEvent(t *kitchen.Ticket, occurredAt time.Time) StateChangedEvent {
	return StateChangedEvent{
		EntityType: "kitchen_ticket",
		EntityID:   t.OrderID().String(),
		OrderID:    t.OrderID().String(),
		NewState:   t.AggregateStatus().String(),
		Version:    t.Version(),
		OccurredAt: occurredAt,
		Kitchen:    true,
	}
}

// EventPublisher fans accepted transitions out to topic-scoped subscribers.
// Publishing is best-effort push assistance on top of the pollable read
// model: implementations log failures, and callers never fail a mutation
// because a publish did not go through.
type EventPublisher interface {
	// Publish delivers the event to every subject it routes to.
	Publish(ctx context.Context, event StateChangedEvent) error
}
