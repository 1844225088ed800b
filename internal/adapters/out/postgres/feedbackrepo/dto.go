// Package feedbackrepo stores feedback submissions in training_feedback.
package feedbackrepo

import (
	"time"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type FeedbackDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     int64     `gorm:"not null;index"`
	Day        int       `gorm:"not null"`
	Difficulty int       `gorm:"not null;check:difficulty_range,difficulty BETWEEN 1 AND 5"`
	Clarity    int       `gorm:"not null;check:clarity_range,clarity BETWEEN 1 AND 5"`
	Comments   string    `gorm:"type:text"`
	Kind       string    `gorm:"size:16;not null"`
	CreatedAt  time.Time `gorm:"index"`
}

func (FeedbackDTO) TableName() string {
	return "training_feedback"
}

func fromDomain(r *feedback.Record) FeedbackDTO {
	return FeedbackDTO{
		ID:         r.ID().Raw(),
		UserID:     r.UserID().Int64(),
		Day:        r.Day().Int(),
		Difficulty: r.Difficulty().Int(),
		Clarity:    r.Clarity().Int(),
		Comments:   r.Comments(),
		Kind:       string(r.Kind()),
		CreatedAt:  r.CreatedAt(),
	}
}

func toDomain(dto FeedbackDTO) (*feedback.Record, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	return feedback.RestoreRecord(
		id,
		kernel.UserID(dto.UserID),
		kernel.CourseDay(dto.Day),
		dto.Difficulty,
		dto.Clarity,
		dto.Comments,
		feedback.Kind(dto.Kind),
		dto.CreatedAt,
	)
}
