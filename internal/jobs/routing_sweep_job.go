package jobs

import (
	"context"
	"log/slog"

	"parcels/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RoutingSweepJob periodically re-runs assignment for parcels that have no
// department. Parcels ingested before their departments or rules existed get
// picked up by the sweep; pending parcels are never touched.
type RoutingSweepJob struct {
	handler commands.RouteUnassignedParcelsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRoutingSweepJob creates a new job for the routing sweep.
// Uses RouteUnassignedParcelsCommandHandler to process the sweep every 30 seconds.
func NewRoutingSweepJob(
	handler commands.RouteUnassignedParcelsCommandHandler,
	logger *slog.Logger,
) *RoutingSweepJob {
	return &RoutingSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "routing_sweep_job"),
	}
}

// Start begins the routing sweep job to run every 30 seconds.
func (j *RoutingSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRouteUnassignedParcelsCommand()

		assigned, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Routing sweep job failed", "error", err)
			return
		}

		if assigned > 0 {
			j.logger.InfoContext(ctx, "Routing sweep assigned parcels", "assigned", assigned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Routing sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the routing sweep job.
func (j *RoutingSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Routing sweep job stopped")
}
