// Package queries contains read operations over the course state. Queries
// bypass the aggregates and read the tables directly.
package queries

import (
	"errors"
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var ErrGetProgressQueryIsNotConstructed = errors.New(
	"GetProgressQuery must be created via NewGetProgressQuery constructor",
)

// GetProgressQuery reads the course progress of one participant.
//
// Example:
//
//	query, err := NewGetProgressQuery(kernel.UserID(42))
//	if err != nil {
//	    return err
//	}
//	progress, err := handler.Handle(ctx, query)
//	fmt.Printf("day %d, %.1f%%\n", progress.CurrentDay, progress.Percentage)
type GetProgressQuery struct {
	userID kernel.UserID

	guard guard.ConstructorGuard
}

func NewGetProgressQuery(userID kernel.UserID) (GetProgressQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetProgressQuery{}, err
	}
	return GetProgressQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetProgressQueryIsNotConstructed)
}

func (q GetProgressQuery) UserID() kernel.UserID {
	return q.userID
}

// GetProgressQueryResponse is the progress read model.
type GetProgressQueryResponse struct {
	UserID            int64     `json:"user_id"`
	CurrentDay        int       `json:"current_day"`
	TrainingCompleted bool      `json:"training_completed"`
	IsPremium         bool      `json:"is_premium"`
	DaysCompleted     int       `json:"days_completed"`
	Percentage        float64   `json:"progress_percentage"`
	Toggles           int64     `json:"toggles"`
	LastActivity      time.Time `json:"last_activity"`
}
