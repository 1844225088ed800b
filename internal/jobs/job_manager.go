package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
)

// Handlers are the commands fired jobs dispatch to.
type Handlers struct {
	OpenDay  commands.OpenCourseDayCommandHandler
	Sweep    commands.SweepProgressionCommandHandler
	Reminder commands.SendReminderCommandHandler
	Backup   commands.BackupDataCommandHandler
	Cleanup  commands.CleanupAnalyticsCommandHandler
}

type systemJob struct {
	key     string
	jobType job.Type
	// spec is evaluated in the server zone.
	spec string
}

var systemJobs = []systemJob{
	{job.SweepMidnightKey, job.DayProgressionSweep, "30 0 * * *"},
	{job.SweepMorningKey, job.DayProgressionSweep, "0 8 * * *"},
	{job.BackupKey, job.Backup, "0 3 * * *"},
	{job.AnalyticsCleanupKey, job.AnalyticsCleanup, "0 2 * * 0"},
}

// JobManager wires command handlers into the scheduler and owns its
// lifecycle.
type JobManager struct {
	scheduler *Scheduler
	server    kernel.Zone
	clock     kernel.Clock
	logger    *slog.Logger
}

// NewJobManager registers a handler for every job type in registry, which
// must be the registry scheduler was built with.
func NewJobManager(
	scheduler *Scheduler,
	registry *Registry,
	handlers Handlers,
	server kernel.Zone,
	clock kernel.Clock,
	logger *slog.Logger,
) *JobManager {
	registry.Register(job.OpenDay, OpenDayHandler(handlers.OpenDay, logger))
	registry.Register(job.DayProgressionSweep, SweepHandler(handlers.Sweep))
	reminder := ReminderHandler(handlers.Reminder)
	registry.Register(job.MorningMotivation, reminder)
	registry.Register(job.TrainingReminder, reminder)
	registry.Register(job.EveningMotivation, reminder)
	registry.Register(job.Backup, BackupHandler(handlers.Backup))
	registry.Register(job.AnalyticsCleanup, CleanupHandler(handlers.Cleanup))

	return &JobManager{
		scheduler: scheduler,
		server:    server,
		clock:     clock,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll restores persisted jobs, arms the system jobs and starts firing.
func (jm *JobManager) StartAll(ctx context.Context) error {
	restored, err := jm.scheduler.RestoreFromStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore jobs: %w", err)
	}

	if err = jm.ArmSystemJobs(ctx); err != nil {
		return fmt.Errorf("failed to arm system jobs: %w", err)
	}

	jm.scheduler.Start()
	jm.logger.InfoContext(ctx, "jobs started", "restored", restored, "armed", jm.scheduler.ArmedCount())
	return nil
}

// ArmSystemJobs arms the sweeps, the backup and the analytics cleanup,
// replacing any restored instance of them.
func (jm *JobManager) ArmSystemJobs(ctx context.Context) error {
	now := jm.clock.Now()
	for _, sj := range systemJobs {
		spec := fmt.Sprintf("CRON_TZ=%s %s", jm.server.ID(), sj.spec)
		j, err := job.NewRecurring(sj.key, sj.jobType, nil, spec, now)
		if err != nil {
			return err
		}
		if err = jm.scheduler.Arm(ctx, j); err != nil {
			return fmt.Errorf("%s: %w", sj.key, err)
		}
	}
	return nil
}

// StopAll waits for in-flight jobs until ctx is done.
func (jm *JobManager) StopAll(ctx context.Context) error {
	return jm.scheduler.Shutdown(ctx)
}

// Scheduler exposes the scheduler to the command handlers that arm jobs.
func (jm *JobManager) Scheduler() *Scheduler {
	return jm.scheduler
}
