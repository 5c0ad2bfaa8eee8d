// Package jobs provides scheduled background tasks of the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3. Schedules use the
// six-field form with seconds, for example "*/10 * * * * *".
//
// # Available Jobs
//
// 1. PricingJob - moves NEW_INQUIRY orders to PENDING_PRICING and prices PENDING_PRICING
// orders through the Pricing Service
// 2. OutboxRelayJob - publishes order status change events from the outbox to Kafka
//
// # Usage
//
//	jobManager := jobs.NewJobManager(pricingJob, relayJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - State and version conflicts are expected races with client requests and are logged at debug level
// - A Pricing Service failure postpones the rest of the batch to the next run
// - The relay stops at the first unpublished message to keep per-order event order
// - Failed job starts will stop any already running jobs
package jobs
