// Package postgres provides the GORM-based Unit of Work used by every command
// handler. A unit of work wraps one database transaction; repositories
// obtained after Begin share it, so participant state, feedback, analytics and
// job rows written by one command commit or roll back together.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.UserRepository().Update(ctx, participant); err != nil {
//	    return err
//	}
//	if err := uow.FeedbackRepository().Add(ctx, record); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction,
// which the deferred call ignores.
//
// Each goroutine must use its own UnitOfWork instance.
package postgres

import (
	"context"

	"fitcourse/internal/adapters/out/postgres/analyticsrepo"
	"fitcourse/internal/adapters/out/postgres/feedbackrepo"
	"fitcourse/internal/adapters/out/postgres/jobrepo"
	"fitcourse/internal/adapters/out/postgres/userrepo"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
// Before Begin, repositories run directly against the connection pool.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewPersistenceError("begin transaction", tx.Error)
	}
	uow.tx = tx

	return nil
}

// Commit finalizes the transaction. After commit the instance can Begin again.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return errs.NewPersistenceError("commit transaction", err)
	}
	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// none is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) FeedbackRepository() ports.FeedbackRepository {
	return feedbackrepo.NewGormFeedbackRepository(uow.conn())
}

func (uow *GormUnitOfWork) AnalyticsRepository() ports.AnalyticsRepository {
	return analyticsrepo.NewGormAnalyticsRepository(uow.conn())
}

func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
