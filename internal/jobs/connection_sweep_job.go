package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// deadConnectionSweeper pings registered realtime channels and drops the
// ones that no longer answer.
type deadConnectionSweeper interface {
	SweepDead() int
}

// ConnectionSweepJob periodically evicts dead websocket connections so the
// registry does not accumulate bindings for clients that vanished without a
// close frame.
type ConnectionSweepJob struct {
	sweeper deadConnectionSweeper
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewConnectionSweepJob creates the sweep job for the given registry.
func NewConnectionSweepJob(sweeper deadConnectionSweeper, logger *slog.Logger) *ConnectionSweepJob {
	return &ConnectionSweepJob{
		sweeper: sweeper,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "connection_sweep_job"),
	}
}

// Start begins the sweep job to run every 30 seconds.
func (j *ConnectionSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if dropped := j.sweeper.SweepDead(); dropped > 0 {
			j.logger.InfoContext(ctx, "Dropped dead realtime connections", "count", dropped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Connection sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *ConnectionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Connection sweep job stopped")
}
