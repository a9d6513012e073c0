package kitchen_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTicketItems(t *testing.T) []kitchen.TicketItem {
	t.Helper()
	burger, err := kitchen.NewTicketItem(kernel.NewUUID(), "Chicken Burger", 2)
	require.NoError(t, err)
	fries, err := kitchen.NewTicketItem(kernel.NewUUID(), "Fries", 1)
	require.NoError(t, err)
	return []kitchen.TicketItem{burger, fries}
}

func newTestTicket(t *testing.T) *kitchen.Ticket {
	t.Helper()
	ticket, err := kitchen.NewTicket(
		kernel.NewUUID(), kernel.NewShortCode(),
		"Amina", "no onions",
		testTicketItems(t), time.Now(),
	)
	require.NoError(t, err)
	return ticket
}

func TestNewTicket(t *testing.T) {
	t.Run("should open with all items pending", func(t *testing.T) {
		ticket := newTestTicket(t)

		require.NoError(t, ticket.Validate())
		assert.Equal(t, kitchen.AggregateNew, ticket.AggregateStatus())
		assert.Equal(t, 1, ticket.Version())
		assert.False(t, ticket.IsRetired())
		assert.Nil(t, ticket.CompletedAt())
		for _, item := range ticket.Items() {
			assert.Equal(t, kitchen.ItemPending, item.Status())
		}
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		_, err := kitchen.NewTicket(
			kernel.NewUUID(), kernel.NewShortCode(),
			"Amina", "", nil, time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid order id", func(t *testing.T) {
		_, err := kitchen.NewTicket(
			kernel.UUID{}, kernel.NewShortCode(),
			"Amina", "", testTicketItems(t), time.Now(),
		)

		require.Error(t, err)
	})
}

func TestNewTicketItem(t *testing.T) {
	t.Run("should reject empty name", func(t *testing.T) {
		_, err := kitchen.NewTicketItem(kernel.NewUUID(), "", 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := kitchen.NewTicketItem(kernel.NewUUID(), "Fries", 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestTicket_AggregateStatus(t *testing.T) {
	t.Run("derives preparing once any item starts", func(t *testing.T) {
		ticket := newTestTicket(t)
		first := ticket.Items()[0].MenuItemID()

		require.NoError(t, ticket.StartItem(first))

		assert.Equal(t, kitchen.AggregatePreparing, ticket.AggregateStatus())
	})

	t.Run("stays preparing until every item is ready", func(t *testing.T) {
		ticket := newTestTicket(t)
		items := ticket.Items()

		require.NoError(t, ticket.StartItem(items[0].MenuItemID()))
		require.NoError(t, ticket.ReadyItem(items[0].MenuItemID()))

		assert.Equal(t, kitchen.AggregatePreparing, ticket.AggregateStatus())
	})

	t.Run("derives ready when all items are ready", func(t *testing.T) {
		ticket := newTestTicket(t)
		for _, item := range ticket.Items() {
			require.NoError(t, ticket.StartItem(item.MenuItemID()))
			require.NoError(t, ticket.ReadyItem(item.MenuItemID()))
		}

		assert.Equal(t, kitchen.AggregateReady, ticket.AggregateStatus())
	})

	t.Run("derivation is pure", func(t *testing.T) {
		ticket := newTestTicket(t)
		before := ticket.Version()

		_ = ticket.AggregateStatus()
		_ = ticket.AggregateStatus()

		assert.Equal(t, before, ticket.Version())
	})
}

func TestTicket_ItemTransitions(t *testing.T) {
	t.Run("start then ready walks forward and bumps versions", func(t *testing.T) {
		ticket := newTestTicket(t)
		id := ticket.Items()[0].MenuItemID()

		require.NoError(t, ticket.StartItem(id))
		require.NoError(t, ticket.ReadyItem(id))

		assert.Equal(t, kitchen.ItemReady, ticket.Items()[0].Status())
		assert.Equal(t, 3, ticket.Version())
	})

	t.Run("duplicate start is a duplicate action, not illegal", func(t *testing.T) {
		ticket := newTestTicket(t)
		id := ticket.Items()[0].MenuItemID()
		require.NoError(t, ticket.StartItem(id))

		err := ticket.StartItem(id)

		require.ErrorIs(t, err, errs.ErrDuplicateAction)
		assert.NotErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, kitchen.ItemPreparing, ticket.Items()[0].Status())
	})

	t.Run("duplicate ready is a duplicate action", func(t *testing.T) {
		ticket := newTestTicket(t)
		id := ticket.Items()[0].MenuItemID()
		require.NoError(t, ticket.StartItem(id))
		require.NoError(t, ticket.ReadyItem(id))

		err := ticket.ReadyItem(id)

		require.ErrorIs(t, err, errs.ErrDuplicateAction)
	})

	t.Run("pending item cannot skip straight to ready", func(t *testing.T) {
		ticket := newTestTicket(t)
		id := ticket.Items()[0].MenuItemID()

		err := ticket.ReadyItem(id)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, kitchen.ItemPending, ticket.Items()[0].Status())
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		ticket := newTestTicket(t)

		err := ticket.StartItem(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestTicket_Complete(t *testing.T) {
	readyTicket := func(t *testing.T) *kitchen.Ticket {
		t.Helper()
		ticket := newTestTicket(t)
		for _, item := range ticket.Items() {
			require.NoError(t, ticket.StartItem(item.MenuItemID()))
			require.NoError(t, ticket.ReadyItem(item.MenuItemID()))
		}
		return ticket
	}

	t.Run("completes once when all items are ready", func(t *testing.T) {
		ticket := readyTicket(t)
		now := time.Now()

		require.NoError(t, ticket.Complete(now))

		assert.Equal(t, kitchen.AggregateCompleted, ticket.AggregateStatus())
		require.NotNil(t, ticket.CompletedAt())
		assert.Equal(t, now, *ticket.CompletedAt())
	})

	t.Run("second complete is a duplicate action", func(t *testing.T) {
		ticket := readyTicket(t)
		require.NoError(t, ticket.Complete(time.Now()))

		err := ticket.Complete(time.Now())

		require.ErrorIs(t, err, errs.ErrDuplicateAction)
	})

	t.Run("refuses completion before all items are ready", func(t *testing.T) {
		ticket := newTestTicket(t)
		require.NoError(t, ticket.StartItem(ticket.Items()[0].MenuItemID()))

		err := ticket.Complete(time.Now())

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Nil(t, ticket.CompletedAt())
	})

	t.Run("completed ticket refuses item mutations", func(t *testing.T) {
		ticket := readyTicket(t)
		require.NoError(t, ticket.Complete(time.Now()))

		err := ticket.StartItem(ticket.Items()[0].MenuItemID())

		require.ErrorIs(t, err, errs.ErrTerminalState)
	})
}

func TestTicket_Retire(t *testing.T) {
	t.Run("retire removes the ticket from the active view", func(t *testing.T) {
		ticket := newTestTicket(t)

		ticket.Retire()

		assert.True(t, ticket.IsRetired())
		assert.Equal(t, 2, ticket.Version())
	})

	t.Run("retiring twice is a no-op", func(t *testing.T) {
		ticket := newTestTicket(t)
		ticket.Retire()

		ticket.Retire()

		assert.Equal(t, 2, ticket.Version())
	})

	t.Run("retired ticket refuses mutations", func(t *testing.T) {
		ticket := newTestTicket(t)
		ticket.Retire()

		require.ErrorIs(t, ticket.StartItem(ticket.Items()[0].MenuItemID()), errs.ErrTerminalState)
		require.ErrorIs(t, ticket.Complete(time.Now()), errs.ErrTerminalState)
	})
}

func TestRestoreTicket(t *testing.T) {
	t.Run("round-trips a ticket through restore", func(t *testing.T) {
		original := newTestTicket(t)
		require.NoError(t, original.StartItem(original.Items()[0].MenuItemID()))

		restored, err := kitchen.RestoreTicket(
			original.OrderID(), original.ShortCode(),
			original.CustomerName(), original.Instructions(),
			original.Items(), original.CompletedAt(), original.IsRetired(),
			original.PlacedAt(), original.Version(),
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.AggregateStatus(), restored.AggregateStatus())
		assert.Equal(t, original.Version(), restored.Version())
		assert.Equal(t, original.Version(), restored.PersistedVersion())
	})

	t.Run("rejects invalid version", func(t *testing.T) {
		original := newTestTicket(t)

		_, err := kitchen.RestoreTicket(
			original.OrderID(), original.ShortCode(),
			original.CustomerName(), "",
			original.Items(), nil, false,
			original.PlacedAt(), 0,
		)

		require.Error(t, err)
	})
}

func TestTicket_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var ticket kitchen.Ticket

		require.Error(t, ticket.Validate())
	})

	t.Run("nil ticket fails validation", func(t *testing.T) {
		var ticket *kitchen.Ticket

		require.Error(t, ticket.Validate())
	})
}
