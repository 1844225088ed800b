package jobs

import (
	"context"
	"sync"

	"fitcourse/internal/core/domain/model/job"
)

// Handler runs one fired job. The context carries the per-job timeout.
type Handler func(ctx context.Context, j *job.ScheduledJob) error

// Registry resolves the callback of a fired job by its type.
type Registry struct {
	mu       sync.RWMutex
	handlers map[job.Type]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[job.Type]Handler)}
}

// Register replaces any handler previously registered for t.
func (r *Registry) Register(t job.Type, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

func (r *Registry) Lookup(t job.Type) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[t]
	return h, ok
}
