package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// MarkDeliveredCommandHandler closes an order's lifecycle, moving
// OutForDelivery to the terminal Delivered status. Marking an already
// delivered order again is a no-op success.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmation.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delivery confirmation command.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	if o.Status() == order.Delivered {
		return nil
	}

	now := time.Now()
	if err = o.Deliver(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStateChanges(ctx, h.publisher, ports.NewOrderStateEvent(o, now))
	return nil
}
