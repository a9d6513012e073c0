package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartOrderItemCommandIsNotConstructed = errors.New(
	"StartOrderItemCommand must be created via NewStartOrderItemCommand constructor",
)

// StartOrderItemCommand represents a kitchen action starting preparation of
// one item on an order's ticket.
type StartOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	menuItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartOrderItemCommand creates a command to start preparing a ticket item.
func NewStartOrderItemCommand(orderID, menuItemID kernel.UUID) (StartOrderItemCommand, error) {
	cmd := StartOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		menuItemID.Validate(),
	); err != nil {
		return StartOrderItemCommand{}, err
	}
	cmd.orderID = orderID
	cmd.menuItemID = menuItemID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderItemCommandIsNotConstructed)
}

// OrderID returns the order whose ticket is being worked.
func (c StartOrderItemCommand) OrderID() kernel.UUID { return c.orderID }

// MenuItemID returns the ticket item being started.
func (c StartOrderItemCommand) MenuItemID() kernel.UUID { return c.menuItemID }
