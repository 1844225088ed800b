package queries

import (
	"context"
	"time"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetProgressQueryHandler reads the users row and counts the participant's
// training_toggled events in one statement.
type GetProgressQueryHandler struct {
	db *gorm.DB
}

func NewGetProgressQueryHandler(db *gorm.DB) GetProgressQueryHandler {
	return GetProgressQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown participants. Days
// completed is the current day capped at the course length.
func (h GetProgressQueryHandler) Handle(ctx context.Context, query GetProgressQuery) (GetProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProgressQueryResponse{}, err
	}

	var row struct {
		UserID            int64
		CurrentDay        int
		TrainingCompleted bool
		IsPremium         bool
		LastActivity      time.Time
		Toggles           int64
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			u.user_id,
			u.current_day,
			u.training_completed,
			u.is_premium,
			u.last_activity,
			(
				SELECT COUNT(*)
				FROM analytics a
				WHERE a.user_id = u.user_id AND a.event_type = ?
			) AS toggles
		FROM users u
		WHERE u.user_id = ?
	`, analytics.TrainingToggled, query.UserID().Int64()).Scan(&row)
	if result.Error != nil {
		return GetProgressQueryResponse{}, errs.NewPersistenceError("get progress", result.Error)
	}
	if result.RowsAffected == 0 {
		return GetProgressQueryResponse{}, errs.NewObjectNotFoundError("user", query.UserID().String())
	}

	days := min(row.CurrentDay, kernel.MaxCourseDay.Int())
	return GetProgressQueryResponse{
		UserID:            row.UserID,
		CurrentDay:        row.CurrentDay,
		TrainingCompleted: row.TrainingCompleted,
		IsPremium:         row.IsPremium,
		DaysCompleted:     days,
		Percentage:        float64(days) / float64(kernel.MaxCourseDay.Int()) * 100,
		Toggles:           row.Toggles,
		LastActivity:      row.LastActivity,
	}, nil
}
