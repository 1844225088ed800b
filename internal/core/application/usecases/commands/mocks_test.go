package commands_test

import (
	"context"
	"time"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// testNow is Monday 12:00 in Moscow.
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UserID) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ListProgressionCandidates(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*user.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFeedbackRepository struct{ mock.Mock }

func (m *MockFeedbackRepository) Add(ctx context.Context, r *feedback.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockFeedbackRepository) ListByUser(ctx context.Context, id kernel.UserID) ([]*feedback.Record, error) {
	args := m.Called(ctx, id)
	if records, ok := args.Get(0).([]*feedback.Record); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAnalyticsRepository struct{ mock.Mock }

func (m *MockAnalyticsRepository) Record(ctx context.Context, e analytics.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockAnalyticsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) FeedbackRepository() ports.FeedbackRepository {
	return m.Called().Get(0).(ports.FeedbackRepository)
}

func (m *MockUoW) AnalyticsRepository() ports.AnalyticsRepository {
	return m.Called().Get(0).(ports.AnalyticsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

type MockAnalyticsUoWFactory struct{ mock.Mock }

func (m *MockAnalyticsUoWFactory) Create() commands.AnalyticsUoW {
	return m.Called().Get(0).(commands.AnalyticsUoW)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Arm(ctx context.Context, j *job.ScheduledJob) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockScheduler) Disarm(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockScheduler) CancelUserJobs(ctx context.Context, id kernel.UserID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScheduler) CancelAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, msg ports.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockDraftStore struct{ mock.Mock }

func (m *MockDraftStore) Save(ctx context.Context, d feedback.Draft) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDraftStore) Load(ctx context.Context, id kernel.UserID, day kernel.CourseDay) (feedback.Draft, bool, error) {
	args := m.Called(ctx, id, day)
	return args.Get(0).(feedback.Draft), args.Bool(1), args.Error(2)
}

func (m *MockDraftStore) Delete(ctx context.Context, id kernel.UserID, day kernel.CourseDay) error {
	return m.Called(ctx, id, day).Error(0)
}

func (m *MockDraftStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockMaintenance struct{ mock.Mock }

func (m *MockMaintenance) PurgeAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMaintenance) Snapshot(ctx context.Context, now time.Time) (ports.Snapshot, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(ports.Snapshot), args.Error(1)
}

type MockBackupSink struct{ mock.Mock }

func (m *MockBackupSink) Write(ctx context.Context, s ports.Snapshot) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

type MockSystemJobArmer struct{ mock.Mock }

func (m *MockSystemJobArmer) ArmSystemJobs(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// uowMocks bundles a unit of work with its repositories. Transaction calls
// are permissive; tests assert on repository calls.
type uowMocks struct {
	uow       *MockUoW
	users     *MockUserRepository
	feedback  *MockFeedbackRepository
	analytics *MockAnalyticsRepository
}

func newUoWMocks() uowMocks {
	m := uowMocks{
		uow:       new(MockUoW),
		users:     new(MockUserRepository),
		feedback:  new(MockFeedbackRepository),
		analytics: new(MockAnalyticsRepository),
	}
	m.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	m.uow.On("Commit", mock.Anything).Return(nil).Maybe()
	m.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	m.uow.On("UserRepository").Return(m.users).Maybe()
	m.uow.On("FeedbackRepository").Return(m.feedback).Maybe()
	m.uow.On("AnalyticsRepository").Return(m.analytics).Maybe()
	return m
}

func (m uowMocks) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(m.uow)
	return f
}

func (m uowMocks) userFactory() *MockUserUoWFactory {
	f := new(MockUserUoWFactory)
	f.On("Create").Return(m.uow)
	return f
}

func (m uowMocks) analyticsFactory() *MockAnalyticsUoWFactory {
	f := new(MockAnalyticsUoWFactory)
	f.On("Create").Return(m.uow)
	return f
}

// expectEvent accepts one analytics event of eventType.
func (m uowMocks) expectEvent(eventType string) *mock.Call {
	return m.analytics.On("Record", mock.Anything, mock.MatchedBy(func(e analytics.Event) bool {
		return e.Type() == eventType
	})).Return(nil)
}

func restoreUser(id int64, tz string, day int, completed bool, lastActivity time.Time) *user.User {
	u, err := user.RestoreUser(kernel.UserID(id), tz, day, completed, false, lastActivity, lastActivity, 1)
	if err != nil {
		panic(err)
	}
	return u
}

func fixedClock() kernel.Clock {
	return kernel.FixedClock{At: testNow}
}

const dayDuration = 24 * time.Hour

func catalog() *content.Catalog {
	c, err := content.DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}
