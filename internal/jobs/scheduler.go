package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultJobTimeout = 30 * time.Second
	DefaultPoolSize   = 4
)

var ErrNoHandler = errors.New("no handler registered for job type")

// Config tunes callback execution.
type Config struct {
	// Location is the server zone cron evaluates wall-clock time in.
	Location *time.Location
	// JobTimeout bounds every callback.
	JobTimeout time.Duration
	// PoolSize is the number of callbacks that may run at once.
	PoolSize int
}

type armedJob struct {
	entryID  cron.EntryID
	job      *job.ScheduledJob
	schedule cron.Schedule
}

// Scheduler owns every timer of the process and mirrors them in the job
// store.
//
// writeMu serializes the writers: Arm, Disarm, the cancellations, restore and
// the post-run update of a recurring row. mu guards only the armed map and
// the cron entries, so a fire never waits on store I/O. The store is written
// before the in-memory state, so a store failure never leaves a timer without
// its row. Every store call is bounded by the job timeout. Each armed timer
// remembers the instance it was armed for; a fire whose instance is no longer
// armed under its key is dropped.
//
// Callbacks run on a bounded pool with a per-job timeout. Errors and panics
// are logged and never retried.
type Scheduler struct {
	writeMu  sync.Mutex
	mu       sync.Mutex
	armed    map[string]armedJob
	cron     *cron.Cron
	pool     *errgroup.Group
	store    ports.JobRepository
	registry *Registry
	clock    kernel.Clock
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(
	store ports.JobRepository,
	registry *Registry,
	clock kernel.Clock,
	cfg Config,
	logger *slog.Logger,
) *Scheduler {
	logger = logger.With("component", "scheduler")

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}

	pool := new(errgroup.Group)
	pool.SetLimit(cfg.PoolSize)

	cl := cronLogger{logger: logger}
	return &Scheduler{
		armed: make(map[string]armedJob),
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		pool:     pool,
		store:    store,
		registry: registry,
		clock:    clock,
		timeout:  cfg.JobTimeout,
		logger:   logger,
	}
}

// Start begins firing armed timers.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.InfoContext(context.Background(), "scheduler started", "armed", s.ArmedCount())
}

// Shutdown stops firing and waits for in-flight callbacks until ctx is done.
// Rows stay active so the next process restores them.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	stopped := s.cron.Stop()

	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	drained := make(chan struct{})
	go func() {
		_ = s.pool.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		s.logger.InfoContext(ctx, "scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Arm stores j as the active instance of its key and replaces the timer of
// that key.
func (s *Scheduler) Arm(ctx context.Context, j *job.ScheduledJob) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if _, ok := s.registry.Lookup(j.Type()); !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, j.Type())
	}

	schedule, err := scheduleFor(j, s.clock.Now())
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("cron spec", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err = s.store.Put(storeCtx, j); err != nil {
		return err
	}

	s.mu.Lock()
	s.arm(j, schedule)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "job armed", "key", j.Key(), "type", j.Type().String(), "fire_at", j.FireAt())
	return nil
}

// Disarm deactivates the row of key and removes its timer.
func (s *Scheduler) Disarm(ctx context.Context, key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.store.Deactivate(storeCtx, key); err != nil {
		return err
	}

	s.mu.Lock()
	s.unarm(key)
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) CancelUserJobs(ctx context.Context, userID kernel.UserID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	keys, err := s.store.DeactivateForUser(storeCtx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, key := range keys {
		s.unarm(key)
	}
	for key, a := range s.armed {
		if owner := a.job.UserID(); owner != nil && *owner == userID {
			s.unarm(key)
		}
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "participant jobs cancelled", "user_id", userID.Int64(), "rows", len(keys))
	return nil
}

func (s *Scheduler) CancelAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	rows, err := s.store.DeactivateAll(storeCtx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for key := range s.armed {
		s.unarm(key)
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "all jobs cancelled", "rows", rows)
	return nil
}

// RestoreFromStore arms every active row and returns how many were armed.
// Past-due one-shot jobs fire on the next tick; recurring rows get their
// next occurrence written back. A row that cannot be armed is logged and
// skipped.
func (s *Scheduler) RestoreFromStore(ctx context.Context) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	listCtx, cancel := s.storeContext(ctx)
	active, err := s.store.List(listCtx, ports.JobFilter{ActiveOnly: true})
	cancel()
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	restored := 0
	for _, j := range active {
		if _, ok := s.registry.Lookup(j.Type()); !ok {
			s.logger.WarnContext(ctx, "skipping job without handler", "key", j.Key(), "type", j.Type().String())
			continue
		}

		schedule, scheduleErr := scheduleFor(j, now)
		if scheduleErr != nil {
			s.logger.ErrorContext(ctx, "skipping job with invalid schedule", "key", j.Key(), "error", scheduleErr)
			continue
		}
		if j.IsRecurring() {
			putCtx, putCancel := s.storeContext(ctx)
			err = s.store.Put(putCtx, j)
			putCancel()
			if err != nil {
				s.logger.ErrorContext(ctx, "failed to refresh recurring job", "key", j.Key(), "error", err)
				continue
			}
		}

		s.mu.Lock()
		s.arm(j, schedule)
		s.mu.Unlock()
		restored++
		if j.IsPastDue(now) {
			s.logger.InfoContext(ctx, "past-due job will fire now", "key", j.Key(), "fire_at", j.FireAt())
		}
	}

	s.logger.InfoContext(ctx, "jobs restored", "restored", restored, "rows", len(active))
	return restored, nil
}

// Armed returns the sorted keys of armed timers.
func (s *Scheduler) Armed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.armed))
	for key := range s.armed {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (s *Scheduler) ArmedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.armed)
}

// arm and unarm require s.mu.
func (s *Scheduler) arm(j *job.ScheduledJob, schedule cron.Schedule) {
	s.unarm(j.Key())

	key, instance := j.Key(), j.ID()
	entryID := s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.fire(key, instance)
	}))
	s.armed[key] = armedJob{entryID: entryID, job: j, schedule: schedule}
}

func (s *Scheduler) unarm(key string) {
	if a, ok := s.armed[key]; ok {
		s.cron.Remove(a.entryID)
		delete(s.armed, key)
	}
}

// fire claims the armed instance and hands it to the pool.
func (s *Scheduler) fire(key string, instance kernel.UUID) {
	s.mu.Lock()
	a, ok := s.armed[key]
	if !ok || a.job.ID() != instance {
		s.mu.Unlock()
		s.logger.DebugContext(context.Background(), "stale fire dropped", "key", key, "instance", instance.String())
		return
	}
	if !a.job.IsRecurring() {
		s.unarm(key)
	}
	s.mu.Unlock()

	s.pool.Go(func() error {
		s.run(a.job, a.schedule)
		return nil
	})
}

func (s *Scheduler) run(j *job.ScheduledJob, schedule cron.Schedule) {
	started := s.clock.Now()
	log := s.logger.With("key", j.Key(), "type", j.Type().String())

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	err := s.invoke(ctx, j)
	cancel()

	if err != nil {
		log.ErrorContext(ctx, "job failed", "error", err, "elapsed", s.clock.Now().Sub(started))
	} else {
		log.InfoContext(ctx, "job executed", "elapsed", s.clock.Now().Sub(started))
	}

	ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err = s.complete(ctx, j, schedule); err != nil {
		log.ErrorContext(ctx, "failed to update job row after run", "error", err)
	}
}

func (s *Scheduler) invoke(ctx context.Context, j *job.ScheduledJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()

	handler, ok := s.registry.Lookup(j.Type())
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, j.Type())
	}
	return handler(ctx, j)
}

func (s *Scheduler) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// complete deactivates an executed one-shot instance, or writes the next
// occurrence of a recurring job that is still armed. The row is only
// refreshed while it is still active; a row deactivated behind the
// scheduler's back (another process clearing the store) also loses its
// timer here.
func (s *Scheduler) complete(ctx context.Context, j *job.ScheduledJob, schedule cron.Schedule) error {
	if !j.IsRecurring() {
		return s.store.DeactivateInstance(ctx, j.ID())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.isArmed(j) {
		s.mu.Unlock()
		return nil
	}
	err := j.Reschedule(schedule.Next(s.clock.Now()))
	s.mu.Unlock()
	if err != nil {
		return err
	}

	refreshed, err := s.store.Refresh(ctx, j)
	if err != nil {
		return err
	}
	if !refreshed {
		s.mu.Lock()
		if s.isArmed(j) {
			s.unarm(j.Key())
		}
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "job row is no longer active, timer removed", "key", j.Key())
	}
	return nil
}

// isArmed requires s.mu.
func (s *Scheduler) isArmed(j *job.ScheduledJob) bool {
	a, ok := s.armed[j.Key()]
	return ok && a.job.ID() == j.ID()
}
