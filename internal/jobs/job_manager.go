package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusReconciliationJob *StatusReconciliationJob
	paymentTimeoutJob       *PaymentTimeoutJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up job execution.
func NewJobManager(
	mismatchedPairs queries.GetMismatchedPairsQueryHandler,
	staleOrders queries.GetStaleAwaitingPaymentOrdersQueryHandler,
	syncOrder commands.SyncOrderWithDeliveryCommandHandler,
	syncDelivery commands.SyncDeliveryWithOrderCommandHandler,
	changeOrder commands.ChangeOrderStatusCommandHandler,
	paymentTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusReconciliationJob: NewStatusReconciliationJob(mismatchedPairs, syncOrder, syncDelivery, logger),
		paymentTimeoutJob:       NewPaymentTimeoutJob(staleOrders, changeOrder, paymentTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statusReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start status reconciliation job: %w", err)
	}

	if err := jm.paymentTimeoutJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.statusReconciliationJob.Stop()
		return fmt.Errorf("failed to start payment timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statusReconciliationJob.Stop()
	jm.paymentTimeoutJob.Stop()
}
