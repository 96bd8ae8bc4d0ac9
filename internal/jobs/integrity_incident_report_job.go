package jobs

import (
	"context"
	"log/slog"

	"orderledger/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultIncidentReportSchedule runs the report every five minutes.
const DefaultIncidentReportSchedule = "@every 5m"

// OpenIncidentLister returns the integrity incidents nobody has resolved yet.
type OpenIncidentLister interface {
	Handle(ctx context.Context, query queries.ListOpenIncidentsQuery) ([]queries.ListOpenIncidentsQueryResponse, error)
}

// IntegrityIncidentReportJob periodically logs unresolved integrity incidents so that
// they reach whoever watches the logs. It only reports; nothing is retried.
type IntegrityIncidentReportJob struct {
	lister   OpenIncidentLister
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewIntegrityIncidentReportJob creates the job. An empty schedule falls back to
// DefaultIncidentReportSchedule.
func NewIntegrityIncidentReportJob(lister OpenIncidentLister, schedule string, logger *slog.Logger) *IntegrityIncidentReportJob {
	if schedule == "" {
		schedule = DefaultIncidentReportSchedule
	}
	return &IntegrityIncidentReportJob{
		lister:   lister,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "integrity_incident_report_job"),
	}
}

// Start schedules the report. It fails for a malformed schedule.
func (j *IntegrityIncidentReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Integrity incident report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report and returns the number of open incidents found.
func (j *IntegrityIncidentReportJob) Run(ctx context.Context) int {
	incidents, err := j.lister.Handle(ctx, queries.NewListOpenIncidentsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Integrity incident report failed", "error", err)
		return 0
	}
	if len(incidents) == 0 {
		return 0
	}

	ids := make([]string, len(incidents))
	orderIDs := make([]string, len(incidents))
	for i, inc := range incidents {
		ids[i] = inc.ID.String()
		orderIDs[i] = inc.OrderID.String()
	}

	j.logger.WarnContext(ctx, "Unresolved integrity incidents, manual reconciliation required",
		"count", len(incidents),
		"incident_ids", ids,
		"order_ids", orderIDs,
		"oldest", incidents[0].CreatedAt,
	)
	return len(incidents)
}

// Stop stops the job and waits for a running report to finish.
func (j *IntegrityIncidentReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Integrity incident report job stopped")
}
