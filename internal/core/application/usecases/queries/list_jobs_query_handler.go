package queries

import (
	"context"
	"strings"

	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListJobsQueryHandler struct {
	db *gorm.DB
}

func NewListJobsQueryHandler(db *gorm.DB) ListJobsQueryHandler {
	return ListJobsQueryHandler{db: db}
}

// Handle returns rows ordered by fire time.
func (h ListJobsQueryHandler) Handle(ctx context.Context, query ListJobsQuery) ([]ListJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.UserID() != nil {
		where = append(where, "user_id = ?")
		args = append(args, query.UserID().Int64())
	}
	if query.ActiveOnly() {
		where = append(where, "is_active")
	}

	sql := `
		SELECT
			job_id,
			user_id,
			job_type,
			scheduled_time,
			cron_spec,
			is_active
		FROM scheduled_jobs`
	if len(where) > 0 {
		sql += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	sql += "\n\t\tORDER BY scheduled_time, job_id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("list jobs", err)
	}
	defer rows.Close()

	jobs := make([]ListJobsQueryResponse, 0)
	for rows.Next() {
		var j ListJobsQueryResponse
		if err = rows.Scan(&j.JobID, &j.UserID, &j.JobType, &j.ScheduledTime, &j.CronSpec, &j.IsActive); err != nil {
			return nil, errs.NewPersistenceError("scan job", err)
		}
		jobs = append(jobs, j)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("list jobs", err)
	}

	return jobs, nil
}
