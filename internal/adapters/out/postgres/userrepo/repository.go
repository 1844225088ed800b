package userrepo

import (
	"context"
	"errors"
	"fmt"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/pkg/errs"

	"gorm.io/gorm"
)

// updatedColumns are written by Update; created_at and the key never change.
var updatedColumns = []string{"timezone", "current_day", "training_completed", "is_premium", "last_activity", "version"}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new participant.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add user", err)
	}
	aggregate.MarkStored()
	return nil
}

// Update writes every mutable column, including false and zero values. The
// row must still carry the version the aggregate was read with.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("user_id = ? AND version = ?", dto.UserID, aggregate.StoredVersion()).
		Select(updatedColumns).
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}
	aggregate.MarkStored()
	return nil
}

func (r *GormUserRepository) missingOrStale(ctx context.Context, aggregate *user.User) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("user_id = ?", aggregate.ID().Int64()).
		Count(&count).Error; err != nil {
		return errs.NewPersistenceError("update user", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidErrorWithCause("user",
		fmt.Errorf("read at version %d", aggregate.StoredVersion()))
}

// Get retrieves a participant by id.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UserID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, errs.NewPersistenceError("get user", err)
	}
	return toDomain(dto)
}

// ListProgressionCandidates returns participants that completed the training
// of a day before the last one.
func (r *GormUserRepository) ListProgressionCandidates(ctx context.Context) ([]*user.User, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("current_day < ? AND training_completed = ?", kernel.MaxCourseDay.Int(), true).
		Order("user_id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list progression candidates", err)
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		users = append(users, u)
	}
	return users, nil
}
