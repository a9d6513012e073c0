package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/ports"
)

// CompleteOrderItemCommandHandler marks one ticket item ready. The ticket's
// aggregate status is derived, so when the last item turns ready the
// published event already reports the ticket as Ready without any aggregate
// write. Hand-off to delivery stays a separate, explicit complete-order
// action. Like starting an item, the write compare-and-sets on the item's
// own status so progress on other items of the same ticket never contends.
type CompleteOrderItemCommandHandler struct {
	uowFactory TicketUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteOrderItemCommandHandler creates a handler for readying ticket items.
func NewCompleteOrderItemCommandHandler(
	uowFactory TicketUoWFactory,
	publisher ports.EventPublisher,
) CompleteOrderItemCommandHandler {
	return CompleteOrderItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the ready-item command.
func (h *CompleteOrderItemCommandHandler) Handle(ctx context.Context, cmd CompleteOrderItemCommand) error {
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

	ticketRepo := uow.KitchenTicketRepository()
	ticket, err := ticketRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ticket.ReadyItem(cmd.MenuItemID()); err != nil {
		return err
	}

	version, err := ticketRepo.UpdateItemStatus(ctx, cmd.OrderID(), cmd.MenuItemID(),
		kitchen.ItemPreparing, kitchen.ItemReady)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.NewTicketStateEvent(ticket, time.Now())
	event.Version = version
	publishStateChanges(ctx, h.publisher, event)
	return nil
}
