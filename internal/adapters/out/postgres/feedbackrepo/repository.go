package feedbackrepo

import (
	"context"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormFeedbackRepository struct {
	db *gorm.DB
}

func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

func (r *GormFeedbackRepository) Add(ctx context.Context, record *feedback.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add feedback", err)
	}
	return nil
}

// ListByUser returns a participant's submissions, oldest first.
func (r *GormFeedbackRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*feedback.Record, error) {
	var dtos []FeedbackDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Int64()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list feedback", err)
	}

	records := make([]*feedback.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, rec)
	}
	return records, nil
}
