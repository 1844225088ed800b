package commands_test

import (
	"errors"
	"testing"
	"time"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/domain/services"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"
	"fitcourse/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepProgressionCommandHandler_Handle(t *testing.T) {
	policy := services.NewProgressionPolicy(kernel.MustZone("Europe/Moscow"))

	t.Run("should advance idle participants and send two messages each", func(t *testing.T) {
		ctx := t.Context()
		idleDay := restoreUser(1, "Europe/Moscow", 1, true, testNow.Add(-25*time.Hour))
		idleMorning := restoreUser(2, "Asia/Tokyo", 2, true, testNow.Add(-9*time.Hour))
		notDone := restoreUser(3, "Europe/Moscow", 1, false, testNow.Add(-48*time.Hour))
		finished := restoreUser(4, "Europe/Moscow", 3, true, testNow.Add(-48*time.Hour))

		m := newUoWMocks()
		m.users.On("ListProgressionCandidates", mock.Anything).
			Return([]*user.User{idleDay, idleMorning, notDone, finished}, nil)
		m.users.On("Update", mock.Anything, mock.Anything).Return(nil)
		m.expectEvent(analytics.NewDayNotification).Times(2)
		m.expectEvent(analytics.TrainingAutoSent).Times(2)

		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		h := commands.NewSweepProgressionCommandHandler(m.userFactory(), notifier, catalog(), policy, fixedClock(), logger.Discard())

		result, err := h.Handle(ctx, commands.NewSweepProgressionCommand())

		require.NoError(t, err)
		require.Len(t, result.Advanced, 2)
		assert.Equal(t, commands.SweepAdvance{UserID: 1, Day: 2, Reason: services.SweepReasonCompleted}, result.Advanced[0])
		assert.Equal(t, commands.SweepAdvance{UserID: 2, Day: 3, Reason: services.SweepReasonMorning}, result.Advanced[1])
		assert.Equal(t, kernel.CourseDay(1), notDone.CurrentDay())
		assert.Equal(t, kernel.CourseDay(3), finished.CurrentDay())
		assert.False(t, idleDay.TrainingCompleted())

		m.users.AssertNumberOfCalls(t, "Update", 2)
		notifier.AssertNumberOfCalls(t, "Notify", 4)
		for _, call := range notifier.Calls {
			msg := call.Arguments.Get(1).(ports.Message)
			assert.Contains(t, []kernel.UserID{1, 2}, msg.UserID)
		}
		m.analytics.AssertExpectations(t)
	})

	t.Run("should be idempotent for the same instant", func(t *testing.T) {
		ctx := t.Context()
		participant := restoreUser(1, "Europe/Moscow", 1, true, testNow.Add(-25*time.Hour))

		m := newUoWMocks()
		m.users.On("ListProgressionCandidates", mock.Anything).Return([]*user.User{participant}, nil)
		m.users.On("Update", mock.Anything, participant).Return(nil).Once()
		m.expectEvent(analytics.NewDayNotification).Once()
		m.expectEvent(analytics.TrainingAutoSent).Once()

		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

		h := commands.NewSweepProgressionCommandHandler(m.userFactory(), notifier, catalog(), policy, fixedClock(), logger.Discard())

		first, err := h.Handle(ctx, commands.NewSweepProgressionCommand())
		require.NoError(t, err)
		second, err := h.Handle(ctx, commands.NewSweepProgressionCommand())
		require.NoError(t, err)

		assert.Len(t, first.Advanced, 1)
		assert.Empty(t, second.Advanced)
		assert.Equal(t, kernel.CourseDay(2), participant.CurrentDay())
		notifier.AssertExpectations(t)
	})

	t.Run("should not notify when the transaction fails", func(t *testing.T) {
		ctx := t.Context()
		participant := restoreUser(1, "Europe/Moscow", 1, true, testNow.Add(-25*time.Hour))

		m := newUoWMocks()
		m.users.On("ListProgressionCandidates", mock.Anything).Return([]*user.User{participant}, nil)
		m.users.On("Update", mock.Anything, participant).
			Return(errs.NewPersistenceError("update user", errors.New("serialization failure")))

		notifier := new(MockNotifier)
		h := commands.NewSweepProgressionCommandHandler(m.userFactory(), notifier, catalog(), policy, fixedClock(), logger.Discard())

		_, err := h.Handle(ctx, commands.NewSweepProgressionCommand())

		require.ErrorIs(t, err, errs.ErrPersistence)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("should keep advancing when delivery fails", func(t *testing.T) {
		ctx := t.Context()
		participant := restoreUser(1, "Europe/Moscow", 1, true, testNow.Add(-25*time.Hour))

		m := newUoWMocks()
		m.users.On("ListProgressionCandidates", mock.Anything).Return([]*user.User{participant}, nil)
		m.users.On("Update", mock.Anything, participant).Return(nil)
		m.expectEvent(analytics.NewDayNotification)
		m.expectEvent(analytics.TrainingAutoSent)

		notifier := new(MockNotifier)
		notifier.On("Notify", mock.Anything, mock.Anything).
			Return(errs.NewTransportError("publish", errors.New("broken pipe")))

		h := commands.NewSweepProgressionCommandHandler(m.userFactory(), notifier, catalog(), policy, fixedClock(), logger.Discard())

		result, err := h.Handle(ctx, commands.NewSweepProgressionCommand())

		require.NoError(t, err)
		assert.Len(t, result.Advanced, 1)
	})
}

func TestSweepProgressionCommandHandler_ContentMatchesDispatch(t *testing.T) {
	t.Run("should deliver the same training message as a direct dispatch", func(t *testing.T) {
		ctx := t.Context()
		policy := services.NewProgressionPolicy(kernel.MustZone("Europe/Moscow"))
		c := catalog()

		swept := restoreUser(1, "Europe/Moscow", 1, true, testNow.Add(-25*time.Hour))
		sweepMocks := newUoWMocks()
		sweepMocks.users.On("ListProgressionCandidates", mock.Anything).Return([]*user.User{swept}, nil)
		sweepMocks.users.On("Update", mock.Anything, swept).Return(nil)
		sweepMocks.expectEvent(analytics.NewDayNotification)
		sweepMocks.expectEvent(analytics.TrainingAutoSent)
		sweepNotifier := new(MockNotifier)
		sweepNotifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		sweep := commands.NewSweepProgressionCommandHandler(sweepMocks.userFactory(), sweepNotifier, c, policy, fixedClock(), logger.Discard())
		_, err := sweep.Handle(ctx, commands.NewSweepProgressionCommand())
		require.NoError(t, err)
		require.Len(t, sweepNotifier.Calls, 2)
		sent := sweepNotifier.Calls[1].Arguments.Get(1).(ports.Message)

		reached := restoreUser(1, "Europe/Moscow", 2, false, testNow)
		dispatchMocks := newUoWMocks()
		dispatchMocks.users.On("Get", mock.Anything, kernel.UserID(1)).Return(reached, nil)
		dispatchMocks.expectEvent(analytics.TrainingViewed)
		dispatchNotifier := new(MockNotifier)
		dispatchNotifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		dispatch := commands.NewDispatchContentCommandHandler(dispatchMocks.userFactory(), dispatchNotifier, c, fixedClock(), logger.Discard())
		cmd, err := commands.NewDispatchContentCommand(1, 2, commands.OriginScheduler)
		require.NoError(t, err)
		direct, err := dispatch.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, direct, sent)
	})
}
