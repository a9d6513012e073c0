package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/nats-io/nats.go"
)

// ResyncFunc loads the authoritative snapshots of every order the consumer
// cares about, typically the non-terminal ones.
type ResyncFunc func(ctx context.Context) (map[string]OrderSnapshot, error)

// subscribeConn is the slice of nats.Conn the subscriber needs.
type subscribeConn interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// OrderEventSubscriber feeds an OrderStateCache from the order subjects.
// Push keeps the cache fresh between polls; the periodic resync puts a hard
// bound on how stale a lost delivery can leave it. The same resync runs on
// reconnect, wired through the connection's reconnect handler.
type OrderEventSubscriber struct {
	conn   subscribeConn
	cache  *OrderStateCache
	resync ResyncFunc

	pollInterval time.Duration
	logger       *slog.Logger

	subscription *nats.Subscription
	done         chan struct{}
}

// NewOrderEventSubscriber creates a subscriber over an established NATS
// connection. pollInterval bounds the staleness window; zero disables the
// periodic resync and leaves only push and reconnect recovery.
func NewOrderEventSubscriber(
	conn *nats.Conn,
	cache *OrderStateCache,
	resync ResyncFunc,
	pollInterval time.Duration,
	logger *slog.Logger,
) *OrderEventSubscriber {
	return newOrderEventSubscriber(conn, cache, resync, pollInterval, logger)
}

func newOrderEventSubscriber(
	conn subscribeConn,
	cache *OrderStateCache,
	resync ResyncFunc,
	pollInterval time.Duration,
	logger *slog.Logger,
) *OrderEventSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderEventSubscriber{
		conn:         conn,
		cache:        cache,
		resync:       resync,
		pollInterval: pollInterval,
		logger:       logger.With("component", "order_event_subscriber"),
		done:         make(chan struct{}),
	}
}

// Start subscribes to the order subjects, performs an initial resync, and
// launches the bounded poll loop.
func (s *OrderEventSubscriber) Start(ctx context.Context) error {
	subscription, err := s.conn.Subscribe("orders.*", s.handleMessage)
	if err != nil {
		return err
	}
	s.subscription = subscription

	s.Resync(ctx)

	if s.pollInterval > 0 {
		go s.pollLoop()
	}

	s.logger.InfoContext(ctx, "subscribed to order events", "poll_interval", s.pollInterval)
	return nil
}

// Stop unsubscribes and stops the poll loop.
func (s *OrderEventSubscriber) Stop() {
	close(s.done)
	if s.subscription != nil {
		if err := s.subscription.Unsubscribe(); err != nil {
			s.logger.Warn("unsubscribe failed", "error", err)
		}
	}
}

// Resync reconciles the cache against the authoritative read model.
func (s *OrderEventSubscriber) Resync(ctx context.Context) {
	if s.resync == nil {
		return
	}

	snapshots, err := s.resync(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "resync failed", "error", err)
		return
	}

	s.cache.Reconcile(snapshots)
	s.logger.DebugContext(ctx, "resynced order cache", "orders", len(snapshots))
}

// HandleReconnect is meant to be wired into nats.ReconnectHandler so a
// reconnected consumer immediately closes the window of missed deliveries.
func (s *OrderEventSubscriber) HandleReconnect(_ *nats.Conn) {
	s.Resync(context.Background())
}

func (s *OrderEventSubscriber) pollLoop() {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Resync(context.Background())
		case <-s.done:
			return
		}
	}
}

func (s *OrderEventSubscriber) handleMessage(msg *nats.Msg) {
	var event ports.StateChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Warn("dropped malformed event", "subject", msg.Subject, "error", err)
		return
	}

	s.cache.Apply(context.Background(), event)
}
