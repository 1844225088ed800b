package feedback_test

import (
	"strings"
	"testing"
	"time"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		difficulty feedback.Rating
		clarity    feedback.Rating
		want       feedback.Sentiment
	}{
		{"both high", 5, 5, feedback.Positive},
		{"both at positive edge", 4, 4, feedback.Positive},
		{"one high one middle", 5, 3, feedback.Neutral},
		{"both middle", 3, 3, feedback.Neutral},
		{"both at negative edge", 2, 2, feedback.Negative},
		{"both low", 1, 1, feedback.Negative},
		{"mixed extremes", 1, 5, feedback.Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feedback.Classify(tt.difficulty, tt.clarity))
		})
	}
}

func TestNewStructuredRecord(t *testing.T) {
	t.Run("should accept ratings within range", func(t *testing.T) {
		r, err := feedback.NewStructuredRecord(kernel.UserID(1), 2, 5, 4, "  great  ", now)

		require.NoError(t, err)
		assert.Equal(t, feedback.Rating(5), r.Difficulty())
		assert.Equal(t, feedback.Rating(4), r.Clarity())
		assert.Equal(t, "great", r.Comments())
		assert.Equal(t, feedback.Structured, r.Kind())
		assert.Equal(t, feedback.Positive, r.Sentiment())
	})

	t.Run("should reject ratings out of range", func(t *testing.T) {
		_, err := feedback.NewStructuredRecord(kernel.UserID(1), 2, 0, 6, "", now)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "difficulty")
		assert.Contains(t, err.Error(), "clarity")
	})

	t.Run("should reject day outside the course", func(t *testing.T) {
		_, err := feedback.NewStructuredRecord(kernel.UserID(1), 4, 3, 3, "", now)
		require.Error(t, err)
	})

	t.Run("should truncate very long comments", func(t *testing.T) {
		r, err := feedback.NewStructuredRecord(kernel.UserID(1), 1, 3, 3, strings.Repeat("я", 2500), now)

		require.NoError(t, err)
		assert.Len(t, []rune(r.Comments()), 2000)
	})
}

func TestNewTextRecord(t *testing.T) {
	t.Run("should store sentinel ratings and classify as negative", func(t *testing.T) {
		r, err := feedback.NewTextRecord(kernel.UserID(1), 1, "too hard, quitting", now)

		require.NoError(t, err)
		assert.Equal(t, feedback.TextFeedbackRating, r.Difficulty())
		assert.Equal(t, feedback.TextFeedbackRating, r.Clarity())
		assert.Equal(t, feedback.FreeText, r.Kind())
		assert.Equal(t, feedback.Negative, r.Sentiment())
	})

	t.Run("should require text", func(t *testing.T) {
		_, err := feedback.NewTextRecord(kernel.UserID(1), 1, "   ", now)
		require.ErrorIs(t, err, feedback.ErrCommentIsRequired)
	})
}

func TestDraft_Apply(t *testing.T) {
	five, two, nine := 5, 2, 9
	draft := feedback.NewDraft(kernel.UserID(1), 1)

	assert.Equal(t, feedback.DefaultRating, draft.Difficulty)
	assert.Equal(t, feedback.DefaultRating, draft.Clarity)

	updated, err := draft.Apply(&five, nil)
	require.NoError(t, err)
	assert.Equal(t, feedback.Rating(5), updated.Difficulty)
	assert.Equal(t, feedback.DefaultRating, updated.Clarity)

	updated, err = updated.Apply(nil, &two)
	require.NoError(t, err)
	assert.Equal(t, feedback.Rating(2), updated.Clarity)

	_, err = updated.Apply(&nine, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
