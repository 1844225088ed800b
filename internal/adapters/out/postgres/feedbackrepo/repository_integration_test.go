package feedbackrepo_test

import (
	"context"
	"testing"
	"time"

	"fitcourse/internal/adapters/out/postgres/feedbackrepo"
	"fitcourse/internal/adapters/out/postgres/pgtest"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type FeedbackRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *feedbackrepo.GormFeedbackRepository
}

func (suite *FeedbackRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = feedbackrepo.NewGormFeedbackRepository(database.DB)
}

func (suite *FeedbackRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *FeedbackRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *FeedbackRepositoryIntegrationTestSuite) TestAdd_And_ListByUser() {
	ctx := context.Background()
	structured, err := feedback.NewStructuredRecord(7, 1, 5, 4, "great", now)
	suite.Require().NoError(err)
	text, err := feedback.NewTextRecord(7, 1, "knees hurt", now.Add(time.Minute))
	suite.Require().NoError(err)
	other, err := feedback.NewStructuredRecord(8, 1, 2, 2, "", now)
	suite.Require().NoError(err)

	for _, r := range []*feedback.Record{structured, text, other} {
		suite.Require().NoError(suite.repository.Add(ctx, r))
	}

	records, err := suite.repository.ListByUser(ctx, kernel.UserID(7))
	suite.Require().NoError(err)
	suite.Require().Len(records, 2)

	suite.Equal(feedback.Structured, records[0].Kind())
	suite.Equal(5, records[0].Difficulty().Int())
	suite.Equal("great", records[0].Comments())
	suite.Equal(feedback.Positive, records[0].Sentiment())

	suite.Equal(feedback.FreeText, records[1].Kind())
	suite.Equal(feedback.TextFeedbackRating, records[1].Difficulty())
	suite.Equal(feedback.Negative, records[1].Sentiment())
}

func (suite *FeedbackRepositoryIntegrationTestSuite) TestListByUser_Empty() {
	records, err := suite.repository.ListByUser(context.Background(), kernel.UserID(99))

	suite.Require().NoError(err)
	suite.Empty(records)
}

func TestFeedbackRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(FeedbackRepositoryIntegrationTestSuite))
}
