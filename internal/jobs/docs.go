// Package jobs provides scheduled background tasks for the order ledger.
//
// Jobs are built on github.com/robfig/cron/v3 and use the standard five-field cron
// syntax as well as descriptors such as "@every 5m".
//
// # Available Jobs
//
// IntegrityIncidentReportJob logs, at WARN, every integrity incident that is still open.
// An incident is stored when a shipping-address change reached the tracking service but
// could neither be saved on the order nor rolled back on the parcel. The job never
// retries the rollback; resolving an incident is a manual task.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listOpenIncidentsHandler, "@every 5m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
