package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob sweeps orders stuck in pending payment past the expiry
// window. Runs every second; each tick computes the deadline from the
// configured timeout and hands it to the expire-orders handler. Racing
// against a payment confirmation is expected and safe: the losing write
// fails its version check and the sweep moves on.
type OrderExpiryJob struct {
	handler       commands.ExpireOrdersCommandHandler
	paymentExpiry time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewOrderExpiryJob creates the expiry sweep job. paymentExpiry is how long
// an order may sit in pending payment before being cancelled.
func NewOrderExpiryJob(
	handler commands.ExpireOrdersCommandHandler,
	paymentExpiry time.Duration,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:       handler,
		paymentExpiry: paymentExpiry,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry sweep to run every second.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireOrdersCommand(time.Now().UTC().Add(-j.paymentExpiry))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build expire orders command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started (running every second)",
		"payment_expiry", j.paymentExpiry)
	return nil
}

// Stop stops the expiry sweep.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
