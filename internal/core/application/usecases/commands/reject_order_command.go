package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents staff rejection of an order, carrying the
// mandatory reason and an optional free-text note for the customer.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	note    string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to reject an order.
// The reason is mandatory; the note is optional.
func NewRejectOrderCommand(orderID kernel.UUID, reason, note string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the order being rejected.
func (c RejectOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Reason returns the mandatory rejection reason.
func (c RejectOrderCommand) Reason() string { return c.reason }

// Note returns the optional free-text note.
func (c RejectOrderCommand) Note() string { return c.note }

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setReason(reason string) error {
	if reason == "" {
		return order.ErrRejectReasonIsRequired
	}

	c.reason = reason
	return nil
}
