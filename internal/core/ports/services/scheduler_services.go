package services

import "context"

// SchedulerSvc drives per-company cadence evaluation and concurrency-safe
// dispatch of sync batches. One active scheduler process per deployment is
// assumed; multi-instance deployments need an external lock (e.g. a
// database-backed lease).
type SchedulerSvc interface {
	// Start launches the fixed-tick evaluation loop. It returns immediately;
	// the loop runs until ctx is cancelled or Stop is called.
	Start(ctx context.Context)

	// Stop halts the tick loop. In-flight syncs run to completion.
	Stop()
}
