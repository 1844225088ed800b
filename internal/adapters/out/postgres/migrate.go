package postgres

import (
	"fitcourse/internal/adapters/out/postgres/analyticsrepo"
	"fitcourse/internal/adapters/out/postgres/feedbackrepo"
	"fitcourse/internal/adapters/out/postgres/jobrepo"
	"fitcourse/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in migration order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&feedbackrepo.FeedbackDTO{},
		&analyticsrepo.EventDTO{},
		&jobrepo.JobDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
