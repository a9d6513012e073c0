package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler applies a cancellation scoped to the requesting
// actor: customers and the expiry scheduler may only cancel orders still
// awaiting payment, while admins may cancel from any non-terminal status.
// Cancelling an already cancelled order is a no-op success; any live kitchen
// ticket is retired in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == order.Cancelled {
		return nil
	}

	if cmd.Actor() != CancelActorAdmin && o.Status() != order.PendingPayment {
		return errs.NewIllegalTransitionError("order", o.Status().String(), order.Cancelled.String())
	}

	now := time.Now()
	if err = o.Cancel(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	events := []ports.StateChangedEvent{ports.NewOrderStateEvent(o, now)}

	ticketEvent, err := retireTicket(ctx, uow.KitchenTicketRepository(), o, now)
	if err != nil {
		return err
	}
	if ticketEvent != nil {
		events = append(events, *ticketEvent)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStateChanges(ctx, h.publisher, events...)
	return nil
}
