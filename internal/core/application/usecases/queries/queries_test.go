package queries_test

import (
	"testing"

	"fitcourse/internal/core/application/usecases/queries"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetProgressQuery(t *testing.T) {
	t.Run("should create query for valid participant", func(t *testing.T) {
		query, err := queries.NewGetProgressQuery(42)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, kernel.UserID(42), query.UserID())
	})

	t.Run("should reject invalid participant", func(t *testing.T) {
		_, err := queries.NewGetProgressQuery(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		require.ErrorIs(t, queries.GetProgressQuery{}.Validate(), queries.ErrGetProgressQueryIsNotConstructed)
	})
}

func TestNewListJobsQuery(t *testing.T) {
	t.Run("should accept missing participant", func(t *testing.T) {
		query, err := queries.NewListJobsQuery(nil, true)

		require.NoError(t, err)
		assert.Nil(t, query.UserID())
		assert.True(t, query.ActiveOnly())
	})

	t.Run("should reject invalid participant", func(t *testing.T) {
		id := kernel.UserID(-1)

		_, err := queries.NewListJobsQuery(&id, false)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		require.ErrorIs(t, queries.ListJobsQuery{}.Validate(), queries.ErrListJobsQueryIsNotConstructed)
	})
}
