package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "fitcourse/internal/adapters/in/http"
	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/application/usecases/queries"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/domain/services"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/generated/servers"
	"fitcourse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegistrar struct{ mock.Mock }

func (m *MockRegistrar) Handle(ctx context.Context, cmd commands.RegisterParticipantCommand) (*user.User, error) {
	args := m.Called(ctx, cmd)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockToggler struct{ mock.Mock }

func (m *MockToggler) Handle(ctx context.Context, cmd commands.ToggleTrainingCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

type MockDraftUpdater struct{ mock.Mock }

func (m *MockDraftUpdater) Handle(ctx context.Context, cmd commands.UpdateRatingDraftCommand) (feedback.Draft, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(feedback.Draft), args.Error(1)
}

type MockStructuredSubmitter struct{ mock.Mock }

func (m *MockStructuredSubmitter) Handle(
	ctx context.Context,
	cmd commands.SubmitStructuredFeedbackCommand,
) (commands.FeedbackResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.FeedbackResult), args.Error(1)
}

func (m *MockStructuredSubmitter) HandleDraft(
	ctx context.Context,
	cmd commands.SubmitDraftFeedbackCommand,
) (commands.FeedbackResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.FeedbackResult), args.Error(1)
}

type MockTextSubmitter struct{ mock.Mock }

func (m *MockTextSubmitter) Handle(ctx context.Context, cmd commands.SubmitTextFeedbackCommand) (commands.FeedbackResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.FeedbackResult), args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Handle(ctx context.Context, cmd commands.DispatchContentCommand) (ports.Message, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.Message), args.Error(1)
}

type MockClearer struct{ mock.Mock }

func (m *MockClearer) Handle(ctx context.Context, cmd commands.ClearAllDataCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockProgressReader struct{ mock.Mock }

func (m *MockProgressReader) Handle(ctx context.Context, q queries.GetProgressQuery) (queries.GetProgressQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetProgressQueryResponse), args.Error(1)
}

type MockJobLister struct{ mock.Mock }

func (m *MockJobLister) Handle(ctx context.Context, q queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error) {
	args := m.Called(ctx, q)
	if jobs, ok := args.Get(0).([]queries.ListJobsQueryResponse); ok {
		return jobs, args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	registrar  *MockRegistrar
	toggler    *MockToggler
	drafts     *MockDraftUpdater
	structured *MockStructuredSubmitter
	text       *MockTextSubmitter
	dispatcher *MockDispatcher
	clearer    *MockClearer
	progress   *MockProgressReader
	jobs       *MockJobLister
	e          *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		registrar:  new(MockRegistrar),
		toggler:    new(MockToggler),
		drafts:     new(MockDraftUpdater),
		structured: new(MockStructuredSubmitter),
		text:       new(MockTextSubmitter),
		dispatcher: new(MockDispatcher),
		clearer:    new(MockClearer),
		progress:   new(MockProgressReader),
		jobs:       new(MockJobLister),
		e:          echo.New(),
	}

	server := httpin.NewServer(httpin.Handlers{
		Register:           f.registrar,
		Toggle:             f.toggler,
		UpdateDraft:        f.drafts,
		StructuredFeedback: f.structured,
		TextFeedback:       f.text,
		Dispatch:           f.dispatcher,
		ClearAll:           f.clearer,
		Progress:           f.progress,
		ListJobs:           f.jobs,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, server.Register(f.e))

	t.Cleanup(func() {
		f.registrar.AssertExpectations(t)
		f.toggler.AssertExpectations(t)
		f.drafts.AssertExpectations(t)
		f.structured.AssertExpectations(t)
		f.text.AssertExpectations(t)
		f.dispatcher.AssertExpectations(t)
		f.clearer.AssertExpectations(t)
		f.progress.AssertExpectations(t)
		f.jobs.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var lastActivity = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestServer_RegisterParticipant(t *testing.T) {
	t.Run("should create participant", func(t *testing.T) {
		f := newFixture(t)
		participant, err := user.RestoreUser(42, "Asia/Tokyo", 1, false, true, lastActivity, lastActivity, 1)
		require.NoError(t, err)

		f.registrar.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterParticipantCommand) bool {
			return cmd.UserID() == 42 && cmd.Timezone() == "Asia/Tokyo" && cmd.IsPremium()
		})).Return(participant, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants",
			`{"user_id":42,"timezone":"Asia/Tokyo","is_premium":true}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decode[servers.Participant](t, rec)
		assert.Equal(t, int64(42), body.UserId)
		assert.Equal(t, 1, body.CurrentDay)
		assert.True(t, body.IsPremium)
		assert.Equal(t, "Asia/Tokyo", body.Timezone)
	})

	t.Run("should reject invalid user id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/participants", `{"user_id":0,"timezone":"UTC"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.registrar.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/participants", `{"user_id":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should hide persistence failure details", func(t *testing.T) {
		f := newFixture(t)
		f.registrar.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewPersistenceError("users.get", errors.New("connection refused"))).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants", `{"user_id":42,"timezone":"UTC"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode[servers.Error](t, rec)
		assert.NotContains(t, body.Message, "connection refused")
	})
}

func TestServer_ToggleTraining(t *testing.T) {
	t.Run("should return new flag", func(t *testing.T) {
		f := newFixture(t)
		f.toggler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ToggleTrainingCommand) bool {
			return cmd.UserID() == 42
		})).Return(true, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/training/toggle", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[servers.ToggleTrainingResponse](t, rec).TrainingCompleted)
	})

	t.Run("should return 404 for unknown participant", func(t *testing.T) {
		f := newFixture(t)
		f.toggler.On("Handle", mock.Anything, mock.Anything).
			Return(false, errs.NewObjectNotFoundError("userID", 7)).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/7/training/toggle", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject non-numeric id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/participants/abc/training/toggle", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetContent(t *testing.T) {
	t.Run("should dispatch as participant request by default", func(t *testing.T) {
		f := newFixture(t)
		msg := ports.Message{UserID: 42, Text: "Day 2", Buttons: []ports.Button{{Text: "Done", Data: "training_done_2"}}}
		f.dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchContentCommand) bool {
			return cmd.UserID() == 42 && cmd.Day() == 2 && cmd.Origin() == commands.OriginUserRequest
		})).Return(msg, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/participants/42/days/2/content", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[servers.ContentMessage](t, rec)
		assert.Equal(t, "Day 2", body.Text)
		require.NotNil(t, body.Buttons)
		assert.Equal(t, "training_done_2", (*body.Buttons)[0].Data)
		assert.Nil(t, body.Image)
	})

	t.Run("should honour scheduler origin", func(t *testing.T) {
		f := newFixture(t)
		f.dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchContentCommand) bool {
			return cmd.Origin() == commands.OriginScheduler
		})).Return(ports.Message{UserID: 42}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/participants/42/days/1/content?origin=scheduler", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should return 403 for locked day", func(t *testing.T) {
		f := newFixture(t)
		f.dispatcher.On("Handle", mock.Anything, mock.Anything).
			Return(ports.Message{}, commands.ErrDayIsLocked).Once()

		rec := f.do(http.MethodGet, "/api/v1/participants/42/days/3/content", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should reject day outside the course", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/participants/42/days/9/content", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_UpdateDraft(t *testing.T) {
	t.Run("should pass only provided ratings", func(t *testing.T) {
		f := newFixture(t)
		draft := feedback.Draft{UserID: 42, Day: 1, Difficulty: 5, Clarity: 3}
		f.drafts.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateRatingDraftCommand) bool {
			return cmd.Difficulty() != nil && *cmd.Difficulty() == 5 && cmd.Clarity() == nil
		})).Return(draft, nil).Once()

		rec := f.do(http.MethodPut, "/api/v1/participants/42/days/1/draft", `{"difficulty":5}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[servers.Draft](t, rec)
		assert.Equal(t, 5, body.Difficulty)
		assert.Equal(t, 3, body.Clarity)
	})

	t.Run("should reject empty draft update", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/v1/participants/42/days/1/draft", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should return 502 when draft store is down", func(t *testing.T) {
		f := newFixture(t)
		f.drafts.On("Handle", mock.Anything, mock.Anything).
			Return(feedback.Draft{}, errs.NewTransportError(42, errors.New("redis down"))).Once()

		rec := f.do(http.MethodPut, "/api/v1/participants/42/days/1/draft", `{"clarity":2}`)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestServer_Feedback(t *testing.T) {
	opensAt := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)
	positive := commands.FeedbackResult{
		Sentiment:  feedback.Positive,
		Decision:   services.Decision{Action: services.ScheduleOpen, TargetDay: 2},
		OpensAt:    opensAt,
		CurrentDay: 1,
	}

	t.Run("should submit structured feedback", func(t *testing.T) {
		f := newFixture(t)
		f.structured.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitStructuredFeedbackCommand) bool {
			return cmd.Difficulty() == 5 && cmd.Clarity() == 4 && cmd.Comments() == "great"
		})).Return(positive, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback",
			`{"difficulty":5,"clarity":4,"comments":"great"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[servers.FeedbackResult](t, rec)
		assert.Equal(t, servers.Positive, body.Sentiment)
		assert.Equal(t, servers.ScheduleOpen, body.Action)
		require.NotNil(t, body.TargetDay)
		assert.Equal(t, 2, *body.TargetDay)
		require.NotNil(t, body.OpensAt)
		assert.True(t, opensAt.Equal(*body.OpensAt))
	})

	t.Run("should reject rating out of range", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback", `{"difficulty":6,"clarity":4}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should report committed feedback when scheduling failed", func(t *testing.T) {
		f := newFixture(t)
		f.structured.On("Handle", mock.Anything, mock.Anything).
			Return(positive, errs.NewPersistenceError("jobs.put", errors.New("timeout"))).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback", `{"difficulty":5,"clarity":5}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should fail when nothing was committed", func(t *testing.T) {
		f := newFixture(t)
		f.structured.On("Handle", mock.Anything, mock.Anything).
			Return(commands.FeedbackResult{}, errs.NewObjectNotFoundError("userID", 42)).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback", `{"difficulty":5,"clarity":5}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should submit draft", func(t *testing.T) {
		f := newFixture(t)
		neutral := commands.FeedbackResult{Sentiment: feedback.Neutral, CurrentDay: 1}
		f.structured.On("HandleDraft", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitDraftFeedbackCommand) bool {
			return cmd.Day() == 1 && cmd.Comments() == "ok"
		})).Return(neutral, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/draft/submit", `{"comments":"ok"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[servers.FeedbackResult](t, rec)
		assert.Equal(t, servers.Neutral, body.Sentiment)
		assert.Equal(t, servers.None, body.Action)
		assert.Nil(t, body.TargetDay)
		assert.Nil(t, body.OpensAt)
	})

	t.Run("should submit text feedback", func(t *testing.T) {
		f := newFixture(t)
		negative := commands.FeedbackResult{
			Sentiment:  feedback.Negative,
			Decision:   services.Decision{Action: services.AdvanceNow, TargetDay: 2},
			CurrentDay: 2,
		}
		f.text.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitTextFeedbackCommand) bool {
			return cmd.Text() == "too hard"
		})).Return(negative, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback/text", `{"text":"too hard"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, decode[servers.FeedbackResult](t, rec).CurrentDay)
	})

	t.Run("should reject blank text feedback", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback/text", `{"text":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetProgress(t *testing.T) {
	t.Run("should return progress", func(t *testing.T) {
		f := newFixture(t)
		f.progress.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetProgressQuery) bool {
			return q.UserID() == 42
		})).Return(queries.GetProgressQueryResponse{UserID: 42, CurrentDay: 2, DaysCompleted: 2, Percentage: 66.67}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/participants/42/progress", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[servers.Progress](t, rec)
		assert.Equal(t, 2, body.DaysCompleted)
		assert.InDelta(t, 66.67, body.ProgressPercentage, 0.001)
	})
}

func TestServer_ListJobs(t *testing.T) {
	t.Run("should default to active jobs of all users", func(t *testing.T) {
		f := newFixture(t)
		f.jobs.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListJobsQuery) bool {
			return q.UserID() == nil && q.ActiveOnly()
		})).Return([]queries.ListJobsQueryResponse{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/admin/jobs", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should filter by user and include inactive", func(t *testing.T) {
		f := newFixture(t)
		uid := int64(42)
		f.jobs.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListJobsQuery) bool {
			return q.UserID() != nil && *q.UserID() == kernel.UserID(42) && !q.ActiveOnly()
		})).Return([]queries.ListJobsQueryResponse{{JobID: "open_day_2_42", UserID: &uid, JobType: "open_day"}}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/admin/jobs?user_id=42&active=false", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[[]servers.Job](t, rec)
		require.Len(t, body, 1)
		assert.Equal(t, "open_day_2_42", body[0].JobId)
		assert.Nil(t, body[0].CronSpec)
	})

	t.Run("should reject malformed filters", func(t *testing.T) {
		f := newFixture(t)

		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/admin/jobs?user_id=x", "").Code)
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/admin/jobs?active=maybe", "").Code)
	})
}

func TestServer_ClearAllData(t *testing.T) {
	t.Run("should return no content without rearming by default", func(t *testing.T) {
		f := newFixture(t)
		f.clearer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ClearAllDataCommand) bool {
			return !cmd.Rearm()
		})).Return(nil).Once()

		rec := f.do(http.MethodDelete, "/api/v1/admin/data", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("should rearm system jobs on request", func(t *testing.T) {
		f := newFixture(t)
		f.clearer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ClearAllDataCommand) bool {
			return cmd.Rearm()
		})).Return(nil).Once()

		rec := f.do(http.MethodDelete, "/api/v1/admin/data?rearm=true", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("should surface failure", func(t *testing.T) {
		f := newFixture(t)
		f.clearer.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewPersistenceError("maintenance.purge", errors.New("boom"))).Once()

		rec := f.do(http.MethodDelete, "/api/v1/admin/data", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_Contract(t *testing.T) {
	t.Run("should reject a day outside the contract before dispatch", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/participants/42/days/0/content", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[servers.Error](t, rec)
		assert.Equal(t, http.StatusBadRequest, body.Code)
		f.dispatcher.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an unknown origin", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/participants/42/days/1/content?origin=cron", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.dispatcher.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject feedback missing a required rating", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/participants/42/days/1/feedback", `{"difficulty":4}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decode[servers.Error](t, rec).Message)
		f.structured.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should return 409 on a lost update", func(t *testing.T) {
		f := newFixture(t)
		f.toggler.On("Handle", mock.Anything, mock.Anything).
			Return(false, errs.NewVersionIsInvalidErrorWithCause("user", errors.New("read at version 3"))).Once()

		rec := f.do(http.MethodPost, "/api/v1/participants/42/training/toggle", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should serve the contract for the swagger ui", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/swagger/doc.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/v1/participants")
		assert.Contains(t, rec.Body.String(), "ClearAllData")
	})
}
