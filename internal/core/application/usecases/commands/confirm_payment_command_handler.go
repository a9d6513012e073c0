package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ConfirmPaymentCommandHandler applies a payment confirmation, moving the
// order from PendingPayment to Pending and opening its kitchen ticket in the
// same transaction.
//
// The handler is idempotent against double delivery of the payment callback:
// an order already sitting in Pending is a no-op success. A confirmation
// racing the expiry sweep is resolved by the repository compare-and-set;
// whichever writer loses receives a stale-state error.
type ConfirmPaymentCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the payment confirmation command.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	if o.Status() == order.Pending {
		return nil
	}

	now := time.Now()
	if err = o.ConfirmPayment(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	ticket, err := openTicket(o, now)
	if err != nil {
		return err
	}
	if err = uow.KitchenTicketRepository().Add(ctx, ticket); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStateChanges(ctx, h.publisher,
		ports.NewOrderStateEvent(o, now),
		ports.NewTicketStateEvent(ticket, now),
	)
	return nil
}
