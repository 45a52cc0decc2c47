// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. SubscriberSweepJob - pings every websocket subscriber and drops the ones
// whose connection is gone (default every 30 seconds, WS_SWEEP_SCHEDULE)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(hub, cfg.WSSweepSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An invalid schedule is reported by StartAll. Sweep failures are per
// subscriber and never stop the job.
package jobs
