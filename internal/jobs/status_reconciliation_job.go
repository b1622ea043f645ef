package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatusReconciliationJob periodically scans for order/delivery pairs whose
// statuses drifted apart and replays synchronization for them. This is the
// retry path for partially synchronized pairs: the applied hops of a failed
// multi-hop plan were committed, and this job finishes the rest.
type StatusReconciliationJob struct {
	mismatchedPairs queries.GetMismatchedPairsQueryHandler
	syncOrder       commands.SyncOrderWithDeliveryCommandHandler
	syncDelivery    commands.SyncDeliveryWithOrderCommandHandler
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewStatusReconciliationJob creates a job that reconciles drifted pairs
// every ten seconds.
func NewStatusReconciliationJob(
	mismatchedPairs queries.GetMismatchedPairsQueryHandler,
	syncOrder commands.SyncOrderWithDeliveryCommandHandler,
	syncDelivery commands.SyncDeliveryWithOrderCommandHandler,
	logger *slog.Logger,
) *StatusReconciliationJob {
	return &StatusReconciliationJob{
		mismatchedPairs: mismatchedPairs,
		syncOrder:       syncOrder,
		syncDelivery:    syncDelivery,
		cron:            cron.New(cron.WithSeconds()),
		logger:          logger.With("component", "status_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run every ten seconds.
func (j *StatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status reconciliation job started (running every 10 seconds)")
	return nil
}

// Stop stops the reconciliation job.
func (j *StatusReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status reconciliation job stopped")
}

// run reconciles every drifted pair found by the query. The delivery side
// is authoritative for physical facts (a parcel already shipped cannot be
// unshipped), so each pair first drives the order towards the delivery;
// pairs the order side cannot resolve are then driven on the delivery side.
func (j *StatusReconciliationJob) run(ctx context.Context) {
	query := queries.NewGetMismatchedPairsQuery()

	pairs, err := j.mismatchedPairs.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to scan for drifted pairs", "error", err)
		return
	}

	for _, pair := range pairs {
		cmd, cmdErr := commands.NewSyncOrderWithDeliveryCommand(pair.OrderID, pair.DeliveryStatus)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build sync command",
				"order_id", pair.OrderID.String(), "error", cmdErr)
			continue
		}

		result, syncErr := j.syncOrder.Handle(ctx, cmd)
		if syncErr != nil {
			j.logger.ErrorContext(ctx, "Order synchronization failed",
				"order_id", pair.OrderID.String(), "error", syncErr)
			continue
		}
		if result.Success {
			j.logger.InfoContext(ctx, "Pair reconciled",
				"order_id", pair.OrderID.String(), "message", result.Message)
			continue
		}

		// The order could not follow the delivery; try the other direction.
		deliveryCmd, cmdErr := commands.NewSyncDeliveryWithOrderCommand(pair.DeliveryID, pair.OrderStatus)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build sync command",
				"delivery_id", pair.DeliveryID.String(), "error", cmdErr)
			continue
		}

		result, syncErr = j.syncDelivery.Handle(ctx, deliveryCmd)
		if syncErr != nil {
			j.logger.ErrorContext(ctx, "Delivery synchronization failed",
				"delivery_id", pair.DeliveryID.String(), "error", syncErr)
			continue
		}
		if !result.Success {
			j.logger.WarnContext(ctx, "Pair could not be reconciled in either direction",
				"order_id", pair.OrderID.String(),
				"delivery_id", pair.DeliveryID.String(),
				"message", result.Message)
		}
	}
}
