// Package jobs runs the scheduled background work of the fulfillment service.
//
// Jobs are cron-scheduled with github.com/robfig/cron/v3 and use six-field
// specs (seconds first) or descriptors such as "@every 30s".
//
// # Available Jobs
//
// 1. UnmatchedOrderSweepJob - retries courier matching for READY delivery orders
// that are still without a courier
// 2. HeatmapRefreshJob - aggregates recent delivery destinations into the demand
// heatmap snapshot served to couriers
//
// # Usage
//
//	manager := jobs.NewJobManager(logger, sweepJob, heatmapJob)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// - A sweep that finds no courier for an order is expected and logged at info
// - Any other failure is logged at error; the next tick tries again
// - A run still in progress when its next tick fires is skipped
// - Failed job starts stop the jobs already started
package jobs
