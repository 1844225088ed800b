package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "fitcourse/internal/adapters/in/http"
	"fitcourse/internal/adapters/out/backup"
	"fitcourse/internal/adapters/out/notifier"
	"fitcourse/internal/adapters/out/postgres"
	"fitcourse/internal/adapters/out/postgres/jobrepo"
	"fitcourse/internal/adapters/out/session"
	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/application/usecases/queries"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/services"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	maintenance *postgres.GormMaintenance
	clock       kernel.Clock
	server      kernel.Zone
	catalog     *content.Catalog
	notifier    ports.Notifier
	drafts      ports.DraftStore
	scheduler   *jobs.Scheduler
	jobManager  *jobs.JobManager
	logger      *slog.Logger
}

// NewCompositionRoot wires every adapter. rdb may be nil, in which case
// messages are only logged and drafts live in process memory.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	rdb goredis.UniversalClient,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	server, err := kernel.ResolveZone(cfg.ServerTimezone)
	if err != nil {
		logger.Warn("server timezone is invalid, using fallback", "timezone", cfg.ServerTimezone, "fallback", server.ID(), "error", err)
	}

	catalog, err := content.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("course catalog: %w", err)
	}

	c := &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		maintenance: postgres.NewGormMaintenance(gormDB),
		clock:       kernel.SystemClock{},
		server:      server,
		catalog:     catalog,
		logger:      logger,
	}

	if rdb != nil {
		c.notifier = notifier.NewRedisNotifier(rdb, cfg.RedisChannel, logger)
	} else {
		c.notifier = notifier.NewLogNotifier(logger)
	}
	c.drafts = session.NewDraftStore(rdb, cfg.DraftTTL, c.clock)

	registry := jobs.NewRegistry()
	c.scheduler = jobs.NewScheduler(jobrepo.NewGormJobRepository(gormDB), registry, c.clock, jobs.Config{
		Location:   server.Location(),
		JobTimeout: cfg.JobTimeout,
		PoolSize:   cfg.WorkerPoolSize,
	}, logger)

	c.jobManager = jobs.NewJobManager(c.scheduler, registry, jobs.Handlers{
		OpenDay:  c.NewOpenCourseDayCommandHandler(),
		Sweep:    c.NewSweepProgressionCommandHandler(),
		Reminder: c.NewSendReminderCommandHandler(),
		Backup:   c.NewBackupDataCommandHandler(),
		Cleanup:  c.NewCleanupAnalyticsCommandHandler(),
	}, server, c.clock, logger)

	return c, nil
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// AcquireSchedulerLock claims ownership of the job table for this process.
func (c *CompositionRoot) AcquireSchedulerLock(ctx context.Context) (*postgres.SchedulerLock, error) {
	return postgres.AcquireSchedulerLock(ctx, c.gormDB)
}

func (c *CompositionRoot) policy() services.ProgressionPolicy {
	return services.NewProgressionPolicy(c.server)
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) feedbackDeps() commands.FeedbackDeps {
	return commands.FeedbackDeps{
		UoWFactory: FuncUoWFactory(func() commands.UoW {
			return c.uowFactory.Create()
		}),
		Scheduler:   c.scheduler,
		Drafts:      c.drafts,
		Notifier:    c.notifier,
		Catalog:     c.catalog,
		Policy:      c.policy(),
		Clock:       c.clock,
		DefaultZone: c.cfg.DefaultTimezone,
	}
}

func (c *CompositionRoot) NewRegisterParticipantCommandHandler() *commands.RegisterParticipantCommandHandler {
	h := commands.NewRegisterParticipantCommandHandler(c.userUoWFactory(), c.scheduler, c.clock, c.cfg.DefaultTimezone, c.logger)
	return &h
}

func (c *CompositionRoot) NewToggleTrainingCommandHandler() *commands.ToggleTrainingCommandHandler {
	h := commands.NewToggleTrainingCommandHandler(c.userUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) NewUpdateRatingDraftCommandHandler() *commands.UpdateRatingDraftCommandHandler {
	h := commands.NewUpdateRatingDraftCommandHandler(c.drafts)
	return &h
}

func (c *CompositionRoot) NewSubmitStructuredFeedbackCommandHandler() *commands.SubmitStructuredFeedbackCommandHandler {
	h := commands.NewSubmitStructuredFeedbackCommandHandler(c.feedbackDeps(), c.logger)
	return &h
}

func (c *CompositionRoot) NewSubmitTextFeedbackCommandHandler() *commands.SubmitTextFeedbackCommandHandler {
	h := commands.NewSubmitTextFeedbackCommandHandler(c.feedbackDeps(), c.logger)
	return &h
}

func (c *CompositionRoot) NewDispatchContentCommandHandler() *commands.DispatchContentCommandHandler {
	h := commands.NewDispatchContentCommandHandler(c.userUoWFactory(), c.notifier, c.catalog, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) NewClearAllDataCommandHandler() *commands.ClearAllDataCommandHandler {
	h := commands.NewClearAllDataCommandHandler(c.scheduler, c.maintenance, c.drafts, c.jobManager, c.logger)
	return &h
}

func (c *CompositionRoot) NewOpenCourseDayCommandHandler() commands.OpenCourseDayCommandHandler {
	return commands.NewOpenCourseDayCommandHandler(c.userUoWFactory(), c.notifier, c.catalog, c.clock, c.logger)
}

func (c *CompositionRoot) NewSweepProgressionCommandHandler() commands.SweepProgressionCommandHandler {
	return commands.NewSweepProgressionCommandHandler(c.userUoWFactory(), c.notifier, c.catalog, c.policy(), c.clock, c.logger)
}

func (c *CompositionRoot) NewSendReminderCommandHandler() commands.SendReminderCommandHandler {
	return commands.NewSendReminderCommandHandler(c.userUoWFactory(), c.notifier, c.catalog, c.clock, c.logger)
}

func (c *CompositionRoot) NewBackupDataCommandHandler() commands.BackupDataCommandHandler {
	return commands.NewBackupDataCommandHandler(c.maintenance, backup.NewFileSink(c.cfg.BackupDir), c.clock, c.logger)
}

func (c *CompositionRoot) NewCleanupAnalyticsCommandHandler() commands.CleanupAnalyticsCommandHandler {
	return commands.NewCleanupAnalyticsCommandHandler(FuncAnalyticsUoWFactory(func() commands.AnalyticsUoW {
		return c.uowFactory.Create()
	}), c.clock)
}

func (c *CompositionRoot) NewGetProgressQueryHandler() *queries.GetProgressQueryHandler {
	h := queries.NewGetProgressQueryHandler(c.gormDB)
	return &h
}

func (c *CompositionRoot) NewListJobsQueryHandler() *queries.ListJobsQueryHandler {
	h := queries.NewListJobsQueryHandler(c.gormDB)
	return &h
}

// HTTPHandlers collects the use cases served by the echo server.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		Register:           c.NewRegisterParticipantCommandHandler(),
		Toggle:             c.NewToggleTrainingCommandHandler(),
		UpdateDraft:        c.NewUpdateRatingDraftCommandHandler(),
		StructuredFeedback: c.NewSubmitStructuredFeedbackCommandHandler(),
		TextFeedback:       c.NewSubmitTextFeedbackCommandHandler(),
		Dispatch:           c.NewDispatchContentCommandHandler(),
		ClearAll:           c.NewClearAllDataCommandHandler(),
		Progress:           c.NewGetProgressQueryHandler(),
		ListJobs:           c.NewListJobsQueryHandler(),
	}
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncAnalyticsUoWFactory func() commands.AnalyticsUoW

func (f FuncAnalyticsUoWFactory) Create() commands.AnalyticsUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
