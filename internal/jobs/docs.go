// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path should not pay for.
//
// # Available Jobs
//
// 1. ConnectionSweepJob - Runs every 30 seconds to evict dead websocket connections
// 2. LocationExpiryJob - Runs every minute to prune stale courier positions
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(registry, locationCache, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs only log when they actually evicted something
// - Failed job starts will stop any already running jobs
package jobs
