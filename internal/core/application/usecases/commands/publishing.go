package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// publishStateChanges pushes accepted transitions to the fan-out bus after a
// successful commit. Push is best-effort assistance on top of the pollable
// read model: failures are logged and never fail the mutation.
func publishStateChanges(ctx context.Context, publisher ports.EventPublisher, events ...ports.StateChangedEvent) {
	if publisher == nil {
		return
	}
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			slog.Warn("state change publish failed",
				"entity_type", event.EntityType,
				"order_id", event.OrderID,
				"new_state", event.NewState,
				"error", err)
		}
	}
}
