// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for keeping orders and deliveries
// consistent.
//
// # Available Jobs
//
// 1. StatusReconciliationJob - Runs every ten seconds to detect order/delivery
// pairs whose statuses drifted apart and replay synchronization for them.
// This covers partially synchronized pairs: a multi-hop plan that failed
// midway committed its applied hops, and reconciliation finishes the rest.
//
// 2. PaymentTimeoutJob - Runs every minute to cancel orders stuck in
// awaiting_payment beyond the configured timeout. Cancellation goes through
// the regular status-change command, so stock restoration and the delivery
// cascade apply.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		mismatchedPairsHandler, staleOrdersHandler,
//		syncOrderHandler, syncDeliveryHandler, changeOrderHandler,
//		30*time.Minute, logger,
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Reconciliation logs pairs it cannot resolve in either direction and
//   retries them on the next tick
// - Payment timeout logs cancellation failures per order and continues
// - Failed job starts will stop any already running jobs
package jobs
