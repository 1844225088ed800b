// Package session keeps in-flight rating drafts. Redis is preferred so drafts
// survive restarts; without it an in-memory map is used.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL applies when no TTL is configured.
	DefaultTTL = 30 * time.Minute
	keyPrefix  = "fitcourse:draft:"
)

// NewDraftStore returns a Redis store when rdb is set, otherwise an
// in-memory store.
func NewDraftStore(rdb goredis.UniversalClient, ttl time.Duration, clock kernel.Clock) ports.DraftStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if rdb != nil {
		return NewRedisDraftStore(rdb, ttl)
	}
	return NewMemoryDraftStore(ttl, clock)
}

func draftKey(userID kernel.UserID, day kernel.CourseDay) string {
	return fmt.Sprintf("%s%d:%d", keyPrefix, userID.Int64(), day.Int())
}

// draftPayload is the stored form of a draft.
type draftPayload struct {
	Difficulty int `json:"difficulty"`
	Clarity    int `json:"clarity"`
}

func toPayload(d feedback.Draft) draftPayload {
	return draftPayload{Difficulty: d.Difficulty.Int(), Clarity: d.Clarity.Int()}
}

func fromPayload(userID kernel.UserID, day kernel.CourseDay, p draftPayload) (feedback.Draft, error) {
	return feedback.NewDraft(userID, day).Apply(&p.Difficulty, &p.Clarity)
}

// RedisDraftStore stores each draft as a JSON string with a TTL.
type RedisDraftStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

func NewRedisDraftStore(rdb goredis.UniversalClient, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, draft feedback.Draft) error {
	raw, err := json.Marshal(toPayload(draft))
	if err != nil {
		return err
	}
	if err = s.rdb.Set(ctx, draftKey(draft.UserID, draft.Day), raw, s.ttl).Err(); err != nil {
		return errs.NewPersistenceError("save draft", err)
	}
	return nil
}

func (s *RedisDraftStore) Load(ctx context.Context, userID kernel.UserID, day kernel.CourseDay) (feedback.Draft, bool, error) {
	raw, err := s.rdb.Get(ctx, draftKey(userID, day)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return feedback.Draft{}, false, nil
	}
	if err != nil {
		return feedback.Draft{}, false, errs.NewPersistenceError("load draft", err)
	}

	var p draftPayload
	if err = json.Unmarshal(raw, &p); err != nil {
		return feedback.Draft{}, false, errs.NewPersistenceError("decode draft", err)
	}
	d, err := fromPayload(userID, day, p)
	if err != nil {
		return feedback.Draft{}, false, err
	}
	return d, true, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID kernel.UserID, day kernel.CourseDay) error {
	if err := s.rdb.Del(ctx, draftKey(userID, day)).Err(); err != nil {
		return errs.NewPersistenceError("delete draft", err)
	}
	return nil
}

// Clear scans the draft prefix and deletes every match.
func (s *RedisDraftStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return errs.NewPersistenceError("scan drafts", err)
		}
		if len(keys) > 0 {
			if err = s.rdb.Del(ctx, keys...).Err(); err != nil {
				return errs.NewPersistenceError("clear drafts", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

type memoryEntry struct {
	payload   draftPayload
	expiresAt time.Time
}

// MemoryDraftStore is the single-instance fallback.
type MemoryDraftStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   kernel.Clock
}

func NewMemoryDraftStore(ttl time.Duration, clock kernel.Clock) *MemoryDraftStore {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &MemoryDraftStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (s *MemoryDraftStore) Save(_ context.Context, draft feedback.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[draftKey(draft.UserID, draft.Day)] = memoryEntry{
		payload:   toPayload(draft),
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryDraftStore) Load(_ context.Context, userID kernel.UserID, day kernel.CourseDay) (feedback.Draft, bool, error) {
	key := draftKey(userID, day)

	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && !s.clock.Now().Before(entry.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return feedback.Draft{}, false, nil
	}
	d, err := fromPayload(userID, day, entry.payload)
	if err != nil {
		return feedback.Draft{}, false, err
	}
	return d, true, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, userID kernel.UserID, day kernel.CourseDay) error {
	s.mu.Lock()
	delete(s.entries, draftKey(userID, day))
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}
