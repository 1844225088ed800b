// Package jobrepo persists scheduled jobs in the scheduled_jobs table.
package jobrepo

import (
	"time"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is one instance row. The partial unique index keeps at most one
// active instance per job key.
type JobDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID         string    `gorm:"column:job_id;size:128;not null;index;uniqueIndex:idx_scheduled_jobs_active_key,where:is_active"`
	UserID        *int64    `gorm:"index"`
	JobType       string    `gorm:"size:32;not null"`
	ScheduledTime time.Time `gorm:"not null"`
	CronSpec      string    `gorm:"size:128"`
	PayloadDay    int
	IsActive      bool `gorm:"not null;default:true;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (JobDTO) TableName() string {
	return "scheduled_jobs"
}

func fromDomain(j *job.ScheduledJob) JobDTO {
	var userID *int64
	if id := j.UserID(); id != nil {
		raw := id.Int64()
		userID = &raw
	}

	return JobDTO{
		ID:            j.ID().Raw(),
		JobID:         j.Key(),
		UserID:        userID,
		JobType:       j.Type().String(),
		ScheduledTime: j.FireAt(),
		CronSpec:      j.CronSpec(),
		PayloadDay:    j.Day().Int(),
		IsActive:      j.IsActive(),
		CreatedAt:     j.CreatedAt(),
	}
}

func toDomain(dto JobDTO) (*job.ScheduledJob, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	jobType, err := job.ParseType(dto.JobType)
	if err != nil {
		return nil, err
	}

	var userID *kernel.UserID
	if dto.UserID != nil {
		uid := kernel.UserID(*dto.UserID)
		userID = &uid
	}

	return job.RestoreScheduledJob(
		id,
		dto.JobID,
		jobType,
		userID,
		dto.ScheduledTime,
		dto.CronSpec,
		dto.PayloadDay,
		dto.IsActive,
		dto.CreatedAt,
	)
}
