// Package jobs provides scheduled background tasks for the shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use six fields, the first one being seconds.
//
// # Available Jobs
//
//  1. OutboxRelayJob - publishes pending order events from the outbox to Kafka
//  2. PendingOrderExpiryJob - cancels orders left Pending for longer than the TTL and returns their stock
//
// # Usage
//
//	jobManager := jobs.NewJobManager().
//		Add("outbox relay", jobs.NewOutboxRelayJob(publishHandler, "*/2 * * * * *", 100, logger)).
//		Add("pending order expiry", jobs.NewPendingOrderExpiryJob(expireHandler, "0 * * * * *", 30*time.Minute, 100, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failing run is logged and retried on the next tick
//   - A run is skipped while the previous one is still going
//   - Panics inside a run are recovered and logged
//   - Failed job starts stop any already running jobs
package jobs
