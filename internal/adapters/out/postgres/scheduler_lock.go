package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

// schedulerLockKey names the session-level advisory lock of the process that
// owns the timers.
const schedulerLockKey int64 = 0x66697463

var ErrSchedulerLockHeld = errors.New("another process owns the scheduler")

// SchedulerLock pins one connection for as long as the lock is held. Postgres
// releases it on its own when that connection dies.
type SchedulerLock struct {
	conn *sql.Conn
}

// AcquireSchedulerLock does not wait: a lock held elsewhere returns
// ErrSchedulerLockHeld.
func AcquireSchedulerLock(ctx context.Context, db *gorm.DB) (*SchedulerLock, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewPersistenceError("scheduler lock", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, errs.NewPersistenceError("scheduler lock", err)
	}

	var acquired bool
	if err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", schedulerLockKey).Scan(&acquired); err != nil {
		_ = conn.Close()
		return nil, errs.NewPersistenceError("scheduler lock", err)
	}
	if !acquired {
		_ = conn.Close()
		return nil, ErrSchedulerLockHeld
	}
	return &SchedulerLock{conn: conn}, nil
}

func (l *SchedulerLock) Release(ctx context.Context) error {
	defer l.conn.Close()

	if _, err := l.conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", schedulerLockKey); err != nil {
		return errs.NewPersistenceError("scheduler unlock", err)
	}
	return nil
}
