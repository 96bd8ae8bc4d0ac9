package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	incidentReportJob *IntegrityIncidentReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	incidents OpenIncidentLister,
	incidentReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		incidentReportJob: NewIntegrityIncidentReportJob(incidents, incidentReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.incidentReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start integrity incident report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.incidentReportJob.Stop()
}
