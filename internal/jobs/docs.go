// Package jobs runs the persistent, timezone-aware job scheduler of the
// course.
//
// It uses github.com/robfig/cron/v3 as the timer engine and mirrors every
// armed timer in the scheduled_jobs table through ports.JobRepository, so
// jobs survive restarts.
//
// # Jobs
//
//  1. open_day_{day}_{user} - one-shot, opens a course day unlocked by positive feedback
//  2. morning_{user}, training_{user}, evening_{user} - daily reminders in the participant's zone
//  3. day_progression_midnight, day_progression_morning - sweeps at 00:30 and 08:00 server time
//  4. database_backup - daily at 03:00 server time
//  5. analytics_cleanup - Sundays at 02:00 server time
//
// # Usage
//
//	registry := jobs.NewRegistry()
//	scheduler := jobs.NewScheduler(jobRepo, registry, kernel.SystemClock{}, jobs.Config{
//		Location:   server.Location(),
//		JobTimeout: 30 * time.Second,
//		PoolSize:   4,
//	}, logger)
//	manager := jobs.NewJobManager(scheduler, registry, handlers, server, kernel.SystemClock{}, logger)
//
//	if err := manager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll(shutdownCtx)
//
// # Error Handling
//
// A failing or panicking callback is logged and never retried; other jobs
// keep firing. The next sweep or the next daily occurrence is the retry.
package jobs
