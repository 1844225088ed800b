// Package analyticsrepo stores activity events in the analytics table.
package analyticsrepo

import (
	"context"
	"time"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventDTO struct {
	ID        int64             `gorm:"primaryKey;autoIncrement"`
	UserID    int64             `gorm:"not null;index"`
	EventType string            `gorm:"size:64;not null;index"`
	EventData datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"not null;index"`
}

func (EventDTO) TableName() string {
	return "analytics"
}

type GormAnalyticsRepository struct {
	db *gorm.DB
}

func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func (r *GormAnalyticsRepository) Record(ctx context.Context, event analytics.Event) error {
	dto := EventDTO{
		UserID:    event.UserID().Int64(),
		EventType: event.Type(),
		EventData: datatypes.JSONMap(event.Data()),
		CreatedAt: event.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("record analytics event", err)
	}
	return nil
}

func (r *GormAnalyticsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&EventDTO{})
	if result.Error != nil {
		return 0, errs.NewPersistenceError("delete analytics events", result.Error)
	}
	return result.RowsAffected, nil
}
