package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// StartOrderItemCommandHandler starts preparation of a single ticket item.
//
// The first started item also moves the order itself from Confirmed to
// Preparing; subsequent starts only touch the ticket. Starting an item twice
// surfaces the ticket's duplicate-action error unchanged: kitchen item
// actions are the one place where a double submission must stay visible.
// The write compare-and-sets on the item's own status, not the ticket
// version, so cooks starting different items at once never knock each other
// stale.
type StartOrderItemCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewStartOrderItemCommandHandler creates a handler for starting ticket items.
func NewStartOrderItemCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) StartOrderItemCommandHandler {
	return StartOrderItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the start-item command.
func (h *StartOrderItemCommandHandler) Handle(ctx context.Context, cmd StartOrderItemCommand) error {
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

	if err = ticket.StartItem(cmd.MenuItemID()); err != nil {
		return err
	}

	version, err := ticketRepo.UpdateItemStatus(ctx, cmd.OrderID(), cmd.MenuItemID(),
		kitchen.ItemPending, kitchen.ItemPreparing)
	if err != nil {
		return err
	}

	now := time.Now()
	ticketEvent := ports.NewTicketStateEvent(ticket, now)
	ticketEvent.Version = version
	events := []ports.StateChangedEvent{ticketEvent}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.Status() == order.Confirmed {
		if err = o.StartPreparing(now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
		events = append(events, ports.NewOrderStateEvent(o, now))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStateChanges(ctx, h.publisher, events...)
	return nil
}
