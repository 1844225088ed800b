package jobs_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
)

type storedRow struct {
	id        kernel.UUID
	key       string
	jobType   job.Type
	userID    *kernel.UserID
	fireAt    time.Time
	cronSpec  string
	day       int
	active    bool
	createdAt time.Time
}

// memoryStore mimics the scheduled_jobs table.
type memoryStore struct {
	mu      sync.Mutex
	rows     map[kernel.UUID]*storedRow
	failPut  error
	putDelay time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[kernel.UUID]*storedRow)}
}

func (s *memoryStore) Put(_ context.Context, j *job.ScheduledJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delay, failPut := s.putDelay, s.failPut
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	s.mu.Lock()

	if failPut != nil {
		return failPut
	}
	for id, r := range s.rows {
		if r.key == j.Key() && id != j.ID() {
			r.active = false
		}
	}
	s.rows[j.ID()] = &storedRow{
		id:        j.ID(),
		key:       j.Key(),
		jobType:   j.Type(),
		userID:    j.UserID(),
		fireAt:    j.FireAt(),
		cronSpec:  j.CronSpec(),
		day:       j.Day().Int(),
		active:    true,
		createdAt: j.CreatedAt(),
	}
	return nil
}

func (s *memoryStore) Refresh(_ context.Context, j *job.ScheduledJob) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[j.ID()]
	if !ok || !r.active {
		return false, nil
	}
	r.fireAt = j.FireAt()
	return true, nil
}

func (s *memoryStore) List(_ context.Context, filter ports.JobFilter) ([]*job.ScheduledJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*job.ScheduledJob
	for _, r := range s.rows {
		if filter.ActiveOnly && !r.active {
			continue
		}
		if filter.UserID != nil && (r.userID == nil || *r.userID != *filter.UserID) {
			continue
		}
		j, err := job.RestoreScheduledJob(r.id, r.key, r.jobType, r.userID, r.fireAt, r.cronSpec, r.day, r.active, r.createdAt)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Key() < out[k].Key() })
	return out, nil
}

func (s *memoryStore) Deactivate(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rows {
		if r.key == key {
			r.active = false
		}
	}
	return nil
}

func (s *memoryStore) DeactivateInstance(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rows[id]; ok {
		r.active = false
	}
	return nil
}

func (s *memoryStore) DeactivateForUser(_ context.Context, userID kernel.UserID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for _, r := range s.rows {
		if r.active && r.userID != nil && *r.userID == userID {
			r.active = false
			keys = append(keys, r.key)
		}
	}
	return keys, nil
}

func (s *memoryStore) DeactivateAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, r := range s.rows {
		if r.active {
			r.active = false
			n++
		}
	}
	return n, nil
}

// activeKeys returns the sorted keys of active rows, one entry per row.
func (s *memoryStore) activeKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0)
	for _, r := range s.rows {
		if r.active {
			keys = append(keys, r.key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (s *memoryStore) row(id kernel.UUID) (storedRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return storedRow{}, false
	}
	return *r, true
}

func (s *memoryStore) seed(j *job.ScheduledJob) {
	s.mu.Lock()
	s.rows[j.ID()] = &storedRow{
		id:        j.ID(),
		key:       j.Key(),
		jobType:   j.Type(),
		userID:    j.UserID(),
		fireAt:    j.FireAt(),
		cronSpec:  j.CronSpec(),
		day:       j.Day().Int(),
		active:    true,
		createdAt: j.CreatedAt(),
	}
	s.mu.Unlock()
}

func (s *memoryStore) setFailPut(err error) {
	s.mu.Lock()
	s.failPut = err
	s.mu.Unlock()
}

// setPutDelay makes Put block like a slow database write.
func (s *memoryStore) setPutDelay(d time.Duration) {
	s.mu.Lock()
	s.putDelay = d
	s.mu.Unlock()
}

func portsActive() ports.JobFilter {
	return ports.JobFilter{ActiveOnly: true}
}
