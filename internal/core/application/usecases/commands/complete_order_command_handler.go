package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// CompleteOrderCommandHandler hands a fully prepared order to delivery.
//
// Readiness never auto-advances the order: the ticket derives Ready the
// moment the last item is done, but the order moves to OutForDelivery only
// through this explicit staff action. The ticket must report every item ready
// or its Complete call rejects the hand-off; the ticket is then retired and
// the order dispatched in one transaction. A concurrent reject loses or wins
// against this via the repository compare-and-set.
//
// Hand-off is deliberately one-shot: a repeat call reaches the ticket, which
// rejects it as a terminal-state mutation once completed or retired, so a
// double submission stays observable instead of silently succeeding.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteOrderCommandHandler creates a handler for order hand-off.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the hand-off command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	ticketRepo := uow.KitchenTicketRepository()
	ticket, err := ticketRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = ticket.Complete(now); err != nil {
		return err
	}
	ticket.Retire()

	if err = o.Dispatch(now); err != nil {
		return err
	}

	if err = ticketRepo.Update(ctx, ticket); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
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
