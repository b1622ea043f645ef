package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// PaymentTimeoutJob cancels orders stuck in awaiting_payment beyond the
// configured timeout. Cancellation goes through the regular command, so
// stock restoration and delivery cascade apply as for any other cancel.
type PaymentTimeoutJob struct {
	staleOrders queries.GetStaleAwaitingPaymentOrdersQueryHandler
	changeOrder commands.ChangeOrderStatusCommandHandler
	timeout     time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPaymentTimeoutJob creates a job that expires unpaid orders every minute.
func NewPaymentTimeoutJob(
	staleOrders queries.GetStaleAwaitingPaymentOrdersQueryHandler,
	changeOrder commands.ChangeOrderStatusCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		staleOrders: staleOrders,
		changeOrder: changeOrder,
		timeout:     timeout,
		cron:        cron.New(),
		logger:      logger.With("component", "payment_timeout_job"),
	}
}

// Start begins the payment timeout job to run every minute.
func (j *PaymentTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment timeout job started (running every minute)",
		"timeout", j.timeout.String())
	return nil
}

// Stop stops the payment timeout job.
func (j *PaymentTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}

func (j *PaymentTimeoutJob) run(ctx context.Context) {
	query, err := queries.NewGetStaleAwaitingPaymentOrdersQuery(time.Now().Add(-j.timeout))
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build stale order query", "error", err)
		return
	}

	stale, err := j.staleOrders.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to scan for stale unpaid orders", "error", err)
		return
	}

	for _, entry := range stale {
		cmd, cmdErr := commands.NewChangeOrderStatusCommand(entry.OrderID, order.ActionCancel)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build cancel command",
				"order_id", entry.OrderID.String(), "error", cmdErr)
			continue
		}

		result, cancelErr := j.changeOrder.Handle(ctx, cmd)
		if cancelErr != nil {
			j.logger.ErrorContext(ctx, "Failed to cancel unpaid order",
				"order_id", entry.OrderID.String(), "error", cancelErr)
			continue
		}

		if result.Success {
			j.logger.InfoContext(ctx, "Unpaid order cancelled",
				"order_id", entry.OrderID.String(),
				"created_at", entry.CreatedAt.Format(time.RFC3339))
		}
	}
}
