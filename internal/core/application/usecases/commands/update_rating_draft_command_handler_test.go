package commands_test

import (
	"errors"
	"testing"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateRatingDraftCommandHandler_Handle(t *testing.T) {
	four, two := 4, 2

	t.Run("should start a draft from default ratings", func(t *testing.T) {
		ctx := t.Context()
		drafts := new(MockDraftStore)
		drafts.On("Load", mock.Anything, kernel.UserID(42), kernel.CourseDay(1)).
			Return(feedback.Draft{}, false, nil).Once()
		drafts.On("Save", mock.Anything, mock.AnythingOfType("feedback.Draft")).Return(nil).Once()

		h := commands.NewUpdateRatingDraftCommandHandler(drafts)
		cmd, err := commands.NewUpdateRatingDraftCommand(42, 1, &four, nil)
		require.NoError(t, err)

		draft, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, feedback.Rating(4), draft.Difficulty)
		assert.Equal(t, feedback.DefaultRating, draft.Clarity)
		drafts.AssertExpectations(t)
	})

	t.Run("should overwrite only the provided rating", func(t *testing.T) {
		ctx := t.Context()
		existing, err := feedback.NewDraft(42, 1).Apply(&four, &four)
		require.NoError(t, err)

		drafts := new(MockDraftStore)
		drafts.On("Load", mock.Anything, kernel.UserID(42), kernel.CourseDay(1)).Return(existing, true, nil).Once()
		drafts.On("Save", mock.Anything, mock.MatchedBy(func(d feedback.Draft) bool {
			return d.Difficulty == 4 && d.Clarity == 2
		})).Return(nil).Once()

		h := commands.NewUpdateRatingDraftCommandHandler(drafts)
		cmd, _ := commands.NewUpdateRatingDraftCommand(42, 1, nil, &two)

		draft, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, feedback.Rating(2), draft.Clarity)
		drafts.AssertExpectations(t)
	})

	t.Run("should return store failures", func(t *testing.T) {
		ctx := t.Context()
		drafts := new(MockDraftStore)
		drafts.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(feedback.Draft{}, false, nil)
		drafts.On("Save", mock.Anything, mock.Anything).
			Return(errs.NewTransportError("set draft", errors.New("timeout")))

		h := commands.NewUpdateRatingDraftCommandHandler(drafts)
		cmd, _ := commands.NewUpdateRatingDraftCommand(42, 1, &two, &two)

		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrTransport)
	})
}
