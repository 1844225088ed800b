package postgres

import (
	"context"
	"time"

	"fitcourse/internal/adapters/out/postgres/analyticsrepo"
	"fitcourse/internal/adapters/out/postgres/feedbackrepo"
	"fitcourse/internal/adapters/out/postgres/jobrepo"
	"fitcourse/internal/adapters/out/postgres/userrepo"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMaintenance implements ports.DataMaintenance.
type GormMaintenance struct {
	db *gorm.DB
}

func NewGormMaintenance(db *gorm.DB) *GormMaintenance {
	return &GormMaintenance{db: db}
}

// PurgeAll removes participants, feedback and analytics. Job rows are kept
// for audit and deactivated.
func (m *GormMaintenance) PurgeAll(ctx context.Context) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&feedbackrepo.FeedbackDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&analyticsrepo.EventDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&userrepo.UserDTO{}).Error; err != nil {
			return err
		}
		return tx.Model(&jobrepo.JobDTO{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error
	})
	if err != nil {
		return errs.NewPersistenceError("purge all", err)
	}
	return nil
}

// Snapshot reads participants, feedback, active jobs and per-type analytics
// counts.
func (m *GormMaintenance) Snapshot(ctx context.Context, now time.Time) (ports.Snapshot, error) {
	snapshot := ports.Snapshot{
		TakenAt:   now,
		Users:     []map[string]any{},
		Feedback:  []map[string]any{},
		Jobs:      []map[string]any{},
		Analytics: map[string]int64{},
	}
	db := m.db.WithContext(ctx)

	if err := db.Model(&userrepo.UserDTO{}).Order("user_id").Find(&snapshot.Users).Error; err != nil {
		return ports.Snapshot{}, errs.NewPersistenceError("snapshot users", err)
	}
	if err := db.Model(&feedbackrepo.FeedbackDTO{}).Order("created_at, id").Find(&snapshot.Feedback).Error; err != nil {
		return ports.Snapshot{}, errs.NewPersistenceError("snapshot feedback", err)
	}
	if err := db.Model(&jobrepo.JobDTO{}).Where("is_active = ?", true).Order("job_id").Find(&snapshot.Jobs).Error; err != nil {
		return ports.Snapshot{}, errs.NewPersistenceError("snapshot jobs", err)
	}

	var counts []struct {
		EventType string
		Total     int64
	}
	err := db.Model(&analyticsrepo.EventDTO{}).
		Select("event_type, COUNT(*) AS total").
		Group("event_type").
		Scan(&counts).Error
	if err != nil {
		return ports.Snapshot{}, errs.NewPersistenceError("snapshot analytics", err)
	}
	for _, c := range counts {
		snapshot.Analytics[c.EventType] = c.Total
	}

	return snapshot, nil
}
