package jobrepo

import (
	"context"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Put deactivates every other active instance of the key and upserts j in
// one transaction. Inside a unit of work the transaction becomes a savepoint.
func (r *GormJobRepository) Put(ctx context.Context, j *job.ScheduledJob) error {
	if err := j.Validate(); err != nil {
		return err
	}

	dto := fromDomain(j)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&JobDTO{}).
			Where("job_id = ? AND is_active = ? AND id <> ?", dto.JobID, true, dto.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"scheduled_time", "cron_spec", "payload_day", "is_active", "updated_at"}),
		}).Create(&dto).Error
	})
	if err != nil {
		return errs.NewPersistenceError("put job", err)
	}
	return nil
}

// Refresh never reactivates a row: a row cleared by another process stays
// inactive.
func (r *GormJobRepository) Refresh(ctx context.Context, j *job.ScheduledJob) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND is_active = ?", j.ID().Raw(), true).
		Update("scheduled_time", j.FireAt())
	if result.Error != nil {
		return false, errs.NewPersistenceError("refresh job", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// List returns jobs ordered by scheduled time, then key.
func (r *GormJobRepository) List(ctx context.Context, filter ports.JobFilter) ([]*job.ScheduledJob, error) {
	query := r.db.WithContext(ctx).Model(&JobDTO{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID.Int64())
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var dtos []JobDTO
	if err := query.Order("scheduled_time, job_id").Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("list jobs", err)
	}

	jobs := make([]*job.ScheduledJob, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Deactivate is idempotent: zero affected rows is success.
func (r *GormJobRepository) Deactivate(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("job_id = ? AND is_active = ?", key, true).
		Update("is_active", false).Error
	if err != nil {
		return errs.NewPersistenceError("deactivate job", err)
	}
	return nil
}

// DeactivateInstance deactivates one instance by id.
func (r *GormJobRepository) DeactivateInstance(ctx context.Context, id kernel.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND is_active = ?", id.Raw(), true).
		Update("is_active", false).Error
	if err != nil {
		return errs.NewPersistenceError("deactivate job instance", err)
	}
	return nil
}

// DeactivateForUser returns the keys that were active.
func (r *GormJobRepository) DeactivateForUser(ctx context.Context, userID kernel.UserID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&JobDTO{}).
			Where("user_id = ? AND is_active = ?", userID.Int64(), true).
			Order("job_id").
			Pluck("job_id", &keys).Error; err != nil {
			return err
		}
		return tx.Model(&JobDTO{}).
			Where("user_id = ? AND is_active = ?", userID.Int64(), true).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, errs.NewPersistenceError("deactivate user jobs", err)
	}
	return keys, nil
}

// DeactivateAll deactivates every active row.
func (r *GormJobRepository) DeactivateAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("is_active = ?", true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, errs.NewPersistenceError("deactivate all jobs", result.Error)
	}
	return result.RowsAffected, nil
}
