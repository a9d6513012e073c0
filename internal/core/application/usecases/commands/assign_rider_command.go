package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents assigning (or reassigning) a rider to an
// order. Rider assignment is a field mutation, not a status transition.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to an order.
func NewAssignRiderCommand(orderID, riderID kernel.UUID) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		riderID.Validate(),
	); err != nil {
		return AssignRiderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.riderID = riderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// OrderID returns the order receiving the rider.
func (c AssignRiderCommand) OrderID() kernel.UUID { return c.orderID }

// RiderID returns the rider being assigned.
func (c AssignRiderCommand) RiderID() kernel.UUID { return c.riderID }
