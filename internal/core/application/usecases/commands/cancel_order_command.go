package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrCancelActorIsInvalid = errors.New("cancel actor is invalid")
)

// CancelActor identifies who requested the cancellation. The actor scopes
// which statuses the cancellation may be applied from.
type CancelActor int

const (
	// CancelActorUnknown represents an invalid actor.
	CancelActorUnknown CancelActor = iota

	// CancelActorCustomer is the customer cancelling their own order.
	// Only legal while the order still awaits payment.
	CancelActorCustomer

	// CancelActorAdmin is staff cancelling on behalf of the restaurant.
	// Legal from any non-terminal status.
	CancelActorAdmin

	// CancelActorScheduler is the expiry sweep cancelling an unpaid order.
	// Only legal while the order still awaits payment.
	CancelActorScheduler
)

// Validate checks the actor is one of the defined values.
func (a CancelActor) Validate() error {
	switch a {
	case CancelActorCustomer, CancelActorAdmin, CancelActorScheduler:
		return nil
	default:
		return ErrCancelActorIsInvalid
	}
}

// String returns the wire name of the actor.
func (a CancelActor) String() string {
	switch a {
	case CancelActorCustomer:
		return "customer"
	case CancelActorAdmin:
		return "admin"
	case CancelActorScheduler:
		return "scheduler"
	default:
		return "unknown"
	}
}

// CancelOrderCommand represents a cancellation request for an order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   CancelActor

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of
// the given actor.
func NewCancelOrderCommand(orderID kernel.UUID, actor CancelActor) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.actor = actor

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns who requested the cancellation.
func (c CancelOrderCommand) Actor() CancelActor { return c.actor }
