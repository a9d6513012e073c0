package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectOrderCommand(t *testing.T) {
	t.Run("carries reason and note", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewRejectOrderCommand(id, "out of stock", "no chicken left")

		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, "out of stock", cmd.Reason())
		assert.Equal(t, "no chicken left", cmd.Note())
	})

	t.Run("requires a reason", func(t *testing.T) {
		_, err := commands.NewRejectOrderCommand(kernel.NewUUID(), "", "")

		require.ErrorIs(t, err, order.ErrRejectReasonIsRequired)
	})
}

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("accepts every defined actor", func(t *testing.T) {
		for _, actor := range []commands.CancelActor{
			commands.CancelActorCustomer, commands.CancelActorAdmin, commands.CancelActorScheduler,
		} {
			cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), actor)

			require.NoError(t, err)
			assert.Equal(t, actor, cmd.Actor())
		}
	})

	t.Run("rejects an unknown actor", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), commands.CancelActorUnknown)

		require.ErrorIs(t, err, commands.ErrCancelActorIsInvalid)
	})
}

func TestIDCommands_RejectInvalidOrderID(t *testing.T) {
	var invalid kernel.UUID

	_, err := commands.NewConfirmPaymentCommand(invalid)
	require.Error(t, err)

	_, err = commands.NewAcceptOrderCommand(invalid)
	require.Error(t, err)

	_, err = commands.NewCompleteOrderCommand(invalid)
	require.Error(t, err)

	_, err = commands.NewMarkDeliveredCommand(invalid)
	require.Error(t, err)

	_, err = commands.NewStartOrderItemCommand(invalid, kernel.NewUUID())
	require.Error(t, err)

	_, err = commands.NewCompleteOrderItemCommand(kernel.NewUUID(), invalid)
	require.Error(t, err)

	_, err = commands.NewAssignRiderCommand(kernel.NewUUID(), invalid)
	require.Error(t, err)
}

func TestUnconstructedCommands_FailValidation(t *testing.T) {
	require.ErrorIs(t, commands.PlaceOrderCommand{}.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.ConfirmPaymentCommand{}.Validate(), commands.ErrConfirmPaymentCommandIsNotConstructed)
	require.ErrorIs(t, commands.AcceptOrderCommand{}.Validate(), commands.ErrAcceptOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.RejectOrderCommand{}.Validate(), commands.ErrRejectOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.ExpireOrdersCommand{}.Validate(), commands.ErrExpireOrdersCommandIsNotConstructed)
}
