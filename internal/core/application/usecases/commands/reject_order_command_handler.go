package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RejectOrderCommandHandler applies staff rejection. Rejection is legal from
// any non-terminal status; the order's kitchen ticket, if one exists, is
// retired in the same transaction so the kitchen board drops it atomically.
//
// A reject racing a concurrent writer (for instance complete-order) is
// resolved by the repository compare-and-set: exactly one wins, the loser
// receives a stale-state error.
type RejectOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rejection command.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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

	if o.Status() == order.Rejected {
		return nil
	}

	now := time.Now()
	if err = o.Reject(cmd.Reason(), cmd.Note(), now); err != nil {
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

// retireTicket drops the order's kitchen ticket from the active board.
// Orders that never reached the kitchen have no ticket; that is not an error.
func retireTicket(
	ctx context.Context,
	ticketRepo ports.KitchenTicketRepository,
	o *order.Order,
	now time.Time,
) (*ports.StateChangedEvent, error) {
	ticket, err := ticketRepo.GetByOrderID(ctx, o.ID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if ticket.IsRetired() {
		return nil, nil
	}

	ticket.Retire()
	if err = ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	event := ports.NewTicketStateEvent(ticket, now)
	return &event, nil
}
