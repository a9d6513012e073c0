package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrExpireOrdersCommandIsNotConstructed = errors.New(
		"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
	)
	ErrDeadlineIsRequired = errors.New("deadline is required")
)

// ExpireOrdersCommand represents one sweep of the expiry scheduler: cancel
// every order still awaiting payment that was placed at or before the
// deadline.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	deadline time.Time

	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand creates a sweep command for the given cutoff.
// Orders placed at or before the deadline without a payment confirmation are
// due for cancellation.
func NewExpireOrdersCommand(deadline time.Time) (ExpireOrdersCommand, error) {
	cmd := ExpireOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if deadline.IsZero() {
		return ExpireOrdersCommand{}, ErrDeadlineIsRequired
	}
	cmd.deadline = deadline

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

// Deadline returns the placement cutoff for the sweep.
func (c ExpireOrdersCommand) Deadline() time.Time {
	return c.deadline
}
