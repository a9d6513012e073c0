package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for checkout.
//
// The fee calculator gates order creation: an inactive zone, a misconfigured
// fee definition or a cart under the zone minimum all block checkout before
// anything is persisted. When the order starts directly in the kitchen-active
// Pending status (cash or fully wallet-covered checkout), a kitchen ticket is
// opened in the same transaction.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	calculator services.DeliveryFeeCalculator
	publisher  ports.EventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for checkout operations.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	calculator services.DeliveryFeeCalculator,
	publisher ports.EventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		publisher:  publisher,
	}
}

// Handle processes the checkout command: quotes the delivery fee, creates the
// order (and its kitchen ticket when immediately kitchen-active), and
// publishes the initial state after commit.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	subtotal := kernel.Money{}
	for _, item := range cmd.Items() {
		subtotal = subtotal.Add(item.LineTotal())
	}

	quote, err := h.calculator.Quote(cmd.DeliveryZone(), subtotal, cmd.DistanceKm())
	if err != nil {
		return err
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(),
		cmd.CustomerName(), cmd.Phone(), cmd.Address(), cmd.Instructions(),
		cmd.Items(),
		quote.Fee, cmd.Discount(), cmd.WalletUsed(),
		cmd.PaymentMethod(), now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	events := []ports.StateChangedEvent{ports.NewOrderStateEvent(newOrder, now)}

	if newOrder.Status().IsKitchenActive() {
		ticket, ticketErr := openTicket(newOrder, now)
		if ticketErr != nil {
			return ticketErr
		}
		if err = uow.KitchenTicketRepository().Add(ctx, ticket); err != nil {
			return err
		}
		events = append(events, ports.NewTicketStateEvent(ticket, now))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStateChanges(ctx, h.publisher, events...)
	return nil
}

// openTicket projects an order into a fresh kitchen ticket.
func openTicket(o *order.Order, now time.Time) (*kitchen.Ticket, error) {
	items := make([]kitchen.TicketItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		ticketItem, err := kitchen.NewTicketItem(item.MenuItemID(), item.Name(), item.Quantity())
		if err != nil {
			return nil, err
		}
		items = append(items, ticketItem)
	}
	return kitchen.NewTicket(o.ID(), o.ShortCode(), o.CustomerName(), o.Instructions(), items, now)
}
