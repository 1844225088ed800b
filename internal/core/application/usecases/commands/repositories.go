// Package commands contains the business operations that modify course state.
// Every command follows the same pattern: a constructed command value, a
// handler that validates it, one unit of work for the primary state change,
// and best-effort side effects (notifications) after commit.
package commands

import (
	"context"

	"fitcourse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the participant repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// FeedbackRepoFactory provides access to the feedback repository within a transaction.
	FeedbackRepoFactory interface {
		FeedbackRepository() ports.FeedbackRepository
	}

	// AnalyticsRepoFactory provides access to the analytics repository within a transaction.
	AnalyticsRepoFactory interface {
		AnalyticsRepository() ports.AnalyticsRepository
	}

	// UserUoW covers commands that change a participant and record analytics.
	UserUoW interface {
		TxManager
		UserRepoFactory
		AnalyticsRepoFactory
	}

	// UserUoWFactory creates new participant unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// AnalyticsUoW covers analytics maintenance.
	AnalyticsUoW interface {
		TxManager
		AnalyticsRepoFactory
	}

	// AnalyticsUoWFactory creates new analytics unit of work instances.
	AnalyticsUoWFactory interface {
		Create() AnalyticsUoW
	}

	// UoW spans participants, feedback and analytics. Used by the feedback
	// commands, which append a record and may move the participant in the
	// same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   participant, err := uow.UserRepository().Get(ctx, userID)
	//   err = uow.FeedbackRepository().Add(ctx, record)
	//   err = uow.UserRepository().Update(ctx, participant)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		UserRepoFactory
		FeedbackRepoFactory
		AnalyticsRepoFactory
	}

	// UoWFactory creates new unit of work instances for feedback operations.
	UoWFactory interface {
		Create() UoW
	}
)
