// Package natsbus publishes state change events to NATS. Fan-out is
// subject-based: every event goes to the order's own subject and the admin
// feed, kitchen-relevant events additionally go to the kitchen board feed,
// and events for orders with an assigned rider go to that rider's feed.
// Delivery is at-most-once; consumers reconcile through the read API.
package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"

	"github.com/nats-io/nats.go"
)

const (
	subjectAdmin   = "admin"
	subjectKitchen = "kitchen"
)

// publishConn is the slice of nats.Conn the publisher needs.
type publishConn interface {
	Publish(subject string, data []byte) error
}

// Publisher implements ports.EventPublisher on top of a NATS connection.
type Publisher struct {
	conn   publishConn
	logger *slog.Logger
}

// NewPublisher creates a publisher over an established NATS connection.
func NewPublisher(conn *nats.Conn, logger *slog.Logger) *Publisher {
	return newPublisher(conn, logger)
}

func newPublisher(conn publishConn, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		conn:   conn,
		logger: logger.With("component", "natsbus"),
	}
}

// Publish serializes the event once and fans it out to every interested
// subject. Failures on individual subjects are joined so one dead consumer
// feed does not hide another.
func (p *Publisher) Publish(ctx context.Context, event ports.StateChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var errs []error
	for _, subject := range subjectsFor(event) {
		if err := p.conn.Publish(subject, payload); err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", subject, err))
		}
	}
	if joined := errors.Join(errs...); joined != nil {
		return joined
	}

	p.logger.DebugContext(ctx, "published state change",
		"entity_type", event.EntityType,
		"order_id", event.OrderID,
		"new_state", event.NewState,
	)
	return nil
}

// subjectsFor derives the fan-out subjects for an event.
func subjectsFor(event ports.StateChangedEvent) []string {
	subjects := []string{
		fmt.Sprintf("orders.%s", event.OrderID),
		subjectAdmin,
	}
	if event.Kitchen {
		subjects = append(subjects, subjectKitchen)
	}
	if event.RiderID != "" {
		subjects = append(subjects, fmt.Sprintf("riders.%s", event.RiderID))
	}
	return subjects
}
