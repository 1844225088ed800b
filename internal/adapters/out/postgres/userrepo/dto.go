// Package userrepo persists participant aggregates in the users table.
package userrepo

import (
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
)

// UserDTO is the users table row.
type UserDTO struct {
	UserID            int64  `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Timezone          string `gorm:"size:64"`
	CurrentDay        int    `gorm:"not null;default:1;check:chk_users_current_day,current_day BETWEEN 1 AND 3"`
	TrainingCompleted bool   `gorm:"not null;default:false;index"`
	IsPremium         bool   `gorm:"not null;default:false"`
	LastActivity      time.Time
	CreatedAt         time.Time
	Version           int64 `gorm:"not null;default:0"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		UserID:            u.ID().Int64(),
		Timezone:          u.Timezone(),
		CurrentDay:        u.CurrentDay().Int(),
		TrainingCompleted: u.TrainingCompleted(),
		IsPremium:         u.IsPremium(),
		LastActivity:      u.LastActivity(),
		CreatedAt:         u.CreatedAt(),
		Version:           u.Version(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	return user.RestoreUser(
		kernel.UserID(dto.UserID),
		dto.Timezone,
		dto.CurrentDay,
		dto.TrainingCompleted,
		dto.IsPremium,
		dto.LastActivity,
		dto.CreatedAt,
		dto.Version,
	)
}
