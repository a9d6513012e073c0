// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. OrderExpiryJob - Runs every second to cancel orders left in pending
// payment past the configured expiry window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireOrdersHandler, 15*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job uses the cron expression "* * * * * *" which means it runs
// every second. The tight cadence keeps the gap between an order expiring
// and it being cancelled small without needing per-order timers.
//
// # Error Handling
//
// The sweep treats losing a version race against a concurrent payment
// confirmation as a normal outcome, not an error; everything else is logged.
package jobs
