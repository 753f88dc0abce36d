package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	connectionSweepJob *ConnectionSweepJob
	locationExpiryJob  *LocationExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	sweeper deadConnectionSweeper,
	cache ports.LocationCache,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		connectionSweepJob: NewConnectionSweepJob(sweeper, logger),
		locationExpiryJob:  NewLocationExpiryJob(cache, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.connectionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start connection sweep job: %w", err)
	}

	if err := jm.locationExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.connectionSweepJob.Stop()
		return fmt.Errorf("failed to start location expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.connectionSweepJob.Stop()
	jm.locationExpiryJob.Stop()
}
