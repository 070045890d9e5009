// Package jobs provides scheduled background tasks for the parcel routing
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the routing service.
//
// # Available Jobs
//
// 1. RoutingSweepJob - Runs every 30 seconds to assign unrouted parcels to
// departments once the rules or departments they need exist
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(routeUnassignedHandler, logger)
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
// - The sweep job logs failures and retries on the next tick
// - Parcels pending insurance review are never touched by the sweep
// - Failed job starts will stop any already running jobs
package jobs
