// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3. Every job wraps its pass in
// cron.SkipIfStillRunning, so a slow pass delays the next one instead of
// overlapping it.
//
// # Available Jobs
//
// 1. AssignmentTimeoutJob - expires offers whose response window elapsed and
// hands each order to the next courier (default every 30 seconds)
// 2. OrderDispatchJob - retries orders left without an offer, for example
// because nobody was on duty when they arrived (default every 15 seconds)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewAssignmentTimeoutJob(expireHandler, 30*time.Second, 100, logger),
//		jobs.NewOrderDispatchJob(retryHandler, 15*time.Second, 100, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - An empty rotation is an expected outcome and is not logged as an error
// - Failures inside a pass are counted per row by the command handlers
// - A failed job start stops the jobs that were already running
package jobs
