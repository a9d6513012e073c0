package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ExpireOrdersCommandHandler cancels orders left awaiting payment past the
// deadline. The sweep is just another caller of the order aggregate's guarded
// transitions: a payment confirmation racing the sweep is resolved by the
// repository compare-and-set, and a lost race is silently dropped rather than
// surfaced as an error. Re-running the sweep is always safe.
type ExpireOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireOrdersCommandHandler creates a handler for the expiry sweep.
func NewExpireOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireOrdersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "expire_orders"),
	}
}

// Handle processes one expiry sweep.
func (h *ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) error {
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
	expired, err := orderRepo.GetExpiredPendingPayment(ctx, cmd.Deadline())
	if err != nil {
		return err
	}

	now := time.Now()
	events := make([]ports.StateChangedEvent, 0, len(expired))
	for _, o := range expired {
		if err = o.Cancel(now); err != nil {
			// another writer got there first; nothing to expire
			h.logger.DebugContext(ctx, "skipping order", "order_id", o.ID(), "error", err)
			continue
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			if errors.Is(err, errs.ErrStaleState) {
				h.logger.DebugContext(ctx, "expiry lost race to concurrent writer", "order_id", o.ID())
				continue
			}
			return err
		}

		events = append(events, ports.NewOrderStateEvent(o, now))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(events) > 0 {
		h.logger.InfoContext(ctx, "expired unpaid orders", "count", len(events))
	}
	publishStateChanges(ctx, h.publisher, events...)
	return nil
}
