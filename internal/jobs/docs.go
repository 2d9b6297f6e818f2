// Package jobs provides the scheduled background tasks of the order service.
//
// Jobs run on github.com/robfig/cron/v3 with six-field (seconds) specs and
// skip a tick while the previous run is still going.
//
// # Available Jobs
//
//  1. NotificationRetryJob redelivers change events a sink rejected when
//     they were published. Default "*/5 * * * * *".
//  2. PurgeTerminalOrdersJob deletes delivered and cancelled orders older
//     than the retention. Default "0 0 3 * * *". Active orders are never
//     touched.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewNotificationRetryJob(notifier, cfg.NotificationRetrySchedule, logger),
//		jobs.NewPurgeTerminalOrdersJob(purgeHandler, cfg.PurgeRetention, cfg.PurgeSchedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged with the job's component field and retried on the
// next tick. A job that fails to start stops the ones already running.
package jobs
