package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteOrderItemCommandIsNotConstructed = errors.New(
	"CompleteOrderItemCommand must be created via NewCompleteOrderItemCommand constructor",
)

// CompleteOrderItemCommand represents a kitchen action marking one ticket
// item ready for hand-off.
type CompleteOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	menuItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderItemCommand creates a command to mark a ticket item ready.
func NewCompleteOrderItemCommand(orderID, menuItemID kernel.UUID) (CompleteOrderItemCommand, error) {
	cmd := CompleteOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		menuItemID.Validate(),
	); err != nil {
		return CompleteOrderItemCommand{}, err
	}
	cmd.orderID = orderID
	cmd.menuItemID = menuItemID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderItemCommandIsNotConstructed)
}

// OrderID returns the order whose ticket is being worked.
func (c CompleteOrderItemCommand) OrderID() kernel.UUID { return c.orderID }

// MenuItemID returns the ticket item being marked ready.
func (c CompleteOrderItemCommand) MenuItemID() kernel.UUID { return c.menuItemID }
