package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_CustomerCancelsUnpaidOrder(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PaymentCard)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), commands.CancelActorCustomer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("KitchenTicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("GetByOrderID", mock.Anything, o.ID()).
			Return(nil, errs.NewObjectNotFoundError("ticket", o.ID())).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(RecordingPublisher)

	h := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	uow.AssertExpectations(t)
	require.Len(t, publisher.Events(), 1)
}

func TestCancelOrderCommandHandler_Handle_CustomerCannotCancelPaidOrder(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PaymentCash) // already Pending, payment settled

	cmd, err := commands.NewCancelOrderCommand(o.ID(), commands.CancelActorCustomer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(RecordingPublisher))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, order.Pending, o.Status())
}

func TestCancelOrderCommandHandler_Handle_AdminCancelsActiveOrderAndRetiresTicket(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PaymentCash)
	ticket := testTicket(t, o)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), commands.CancelActorAdmin)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ticketRepo := new(MockTicketRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("KitchenTicketRepository").Return(ticketRepo).Once(),
		ticketRepo.On("GetByOrderID", mock.Anything, o.ID()).Return(ticket, nil).Once(),
		ticketRepo.On("Update", mock.Anything, ticket).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(RecordingPublisher)

	h := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.True(t, ticket.IsRetired())
	require.Len(t, publisher.Events(), 2)
}

func TestCancelOrderCommandHandler_Handle_AlreadyCancelledIsNoop(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PaymentCard)
	require.NoError(t, o.Cancel(o.PlacedAt()))

	cmd, err := commands.NewCancelOrderCommand(o.ID(), commands.CancelActorCustomer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(RecordingPublisher)

	h := commands.NewCancelOrderCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, publisher.Events())
}
