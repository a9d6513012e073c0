package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// AssignRiderCommandHandler records the rider on an order. Assignment is
// legal in any non-terminal status and may replace a previously assigned
// rider; re-assigning the same rider is a no-op success. The published event
// carries the rider id so the bus can fan out to the rider's own channel.
type AssignRiderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rider assignment command.
func (h *AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
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

	if rider := o.Rider(); rider != nil && rider.IsEqual(cmd.RiderID()) {
		return nil
	}

	if err = o.AssignRider(cmd.RiderID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStateChanges(ctx, h.publisher, ports.NewOrderStateEvent(o, time.Now()))
	return nil
}
