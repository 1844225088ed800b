package queries_test

import (
	"context"
	"testing"
	"time"

	"fitcourse/internal/adapters/out/postgres/analyticsrepo"
	"fitcourse/internal/adapters/out/postgres/jobrepo"
	"fitcourse/internal/adapters/out/postgres/pgtest"
	"fitcourse/internal/adapters/out/postgres/userrepo"
	"fitcourse/internal/core/application/usecases/queries"
	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	progress queries.GetProgressQueryHandler
	jobs     queries.ListJobsQueryHandler
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.progress = queries.NewGetProgressQueryHandler(database.DB)
	suite.jobs = queries.NewListJobsQueryHandler(database.DB)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) TestGetProgress_CountsToggles() {
	ctx := context.Background()
	participant, err := user.RestoreUser(42, "Europe/Moscow", 2, true, true, now, now, 3)
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.database.DB).Add(ctx, participant))

	events := analyticsrepo.NewGormAnalyticsRepository(suite.database.DB)
	for i, eventType := range []string{analytics.TrainingToggled, analytics.TrainingToggled, analytics.TrainingViewed} {
		event, eventErr := analytics.NewEvent(42, eventType, map[string]any{"n": i}, now)
		suite.Require().NoError(eventErr)
		suite.Require().NoError(events.Record(ctx, event))
	}
	other, err := analytics.NewEvent(7, analytics.TrainingToggled, nil, now)
	suite.Require().NoError(err)
	suite.Require().NoError(events.Record(ctx, other))

	query, err := queries.NewGetProgressQuery(42)
	suite.Require().NoError(err)

	progress, err := suite.progress.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(int64(42), progress.UserID)
	suite.Equal(2, progress.CurrentDay)
	suite.True(progress.TrainingCompleted)
	suite.True(progress.IsPremium)
	suite.Equal(2, progress.DaysCompleted)
	suite.InDelta(66.67, progress.Percentage, 0.01)
	suite.Equal(int64(2), progress.Toggles)
}

func (suite *QueriesIntegrationTestSuite) TestGetProgress_UnknownParticipant() {
	query, err := queries.NewGetProgressQuery(404)
	suite.Require().NoError(err)

	_, err = suite.progress.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListJobs_Filters() {
	ctx := context.Background()
	repo := jobrepo.NewGormJobRepository(suite.database.DB)
	moscow := kernel.MustZone("Europe/Moscow")

	morning, err := job.NewReminderJob(job.MorningMotivation, 42, moscow, 8, 0, now)
	suite.Require().NoError(err)
	openDay, err := job.NewOpenDayJob(42, 2, now.Add(18*time.Hour), now)
	suite.Require().NoError(err)
	evening, err := job.NewReminderJob(job.EveningMotivation, 7, moscow, 20, 0, now)
	suite.Require().NoError(err)
	sweep, err := job.NewRecurring(job.SweepMorningKey, job.DayProgressionSweep, nil, "0 8 * * *", now)
	suite.Require().NoError(err)

	for _, j := range []*job.ScheduledJob{morning, openDay, evening, sweep} {
		suite.Require().NoError(repo.Put(ctx, j))
	}
	suite.Require().NoError(repo.Deactivate(ctx, openDay.Key()))

	uid := kernel.UserID(42)
	tests := []struct {
		name       string
		userID     *kernel.UserID
		activeOnly bool
		want       []string
	}{
		{"all rows", nil, false, []string{"morning_42", "open_day_2_42", "evening_7", job.SweepMorningKey}},
		{"active rows", nil, true, []string{"morning_42", "evening_7", job.SweepMorningKey}},
		{"rows of one participant", &uid, false, []string{"morning_42", "open_day_2_42"}},
		{"active rows of one participant", &uid, true, []string{"morning_42"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			query, queryErr := queries.NewListJobsQuery(tt.userID, tt.activeOnly)
			suite.Require().NoError(queryErr)

			rows, handleErr := suite.jobs.Handle(ctx, query)

			suite.Require().NoError(handleErr)
			keys := make([]string, 0, len(rows))
			for _, row := range rows {
				keys = append(keys, row.JobID)
			}
			suite.ElementsMatch(tt.want, keys)
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestListJobs_Empty() {
	query, err := queries.NewListJobsQuery(nil, false)
	suite.Require().NoError(err)

	rows, err := suite.jobs.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(rows)
	suite.Empty(rows)
}

func TestQueriesIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
