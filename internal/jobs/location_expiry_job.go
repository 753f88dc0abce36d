package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// locationTTL is how long a reported courier position stays meaningful.
const locationTTL = 5 * time.Minute

// LocationExpiryJob prunes stale courier positions from the location cache.
// A courier that stopped reporting should not keep showing a frozen position.
type LocationExpiryJob struct {
	cache  ports.LocationCache
	cron   *cron.Cron
	logger *slog.Logger
}

// NewLocationExpiryJob creates the expiry job for the given cache.
func NewLocationExpiryJob(cache ports.LocationCache, logger *slog.Logger) *LocationExpiryJob {
	return &LocationExpiryJob{
		cache:  cache,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "location_expiry_job"),
	}
}

// Start begins the expiry job to run every minute.
func (j *LocationExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-locationTTL)
		if pruned := j.cache.PruneOlderThan(cutoff); pruned > 0 {
			j.logger.InfoContext(ctx, "Pruned stale courier positions", "count", pruned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry job.
func (j *LocationExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location expiry job stopped")
}
