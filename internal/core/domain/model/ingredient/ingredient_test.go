package ingredient_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngredient(t *testing.T) {
	t.Run("should create ingredient that is not expired anywhere", func(t *testing.T) {
		id := kernel.NewUUID()

		i, err := ingredient.NewIngredient(id, "Cheese")

		require.NoError(t, err)
		require.NoError(t, i.Validate())
		assert.True(t, i.ID().IsEqual(id))
		assert.Equal(t, "Cheese", i.Name())
		assert.False(t, i.IsExpired())
		assert.False(t, i.IsExpiredAt(kernel.NewUUID()))
		assert.Empty(t, i.ExpiredBranches())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := ingredient.NewIngredient(kernel.NewUUID(), "   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreIngredient(t *testing.T) {
	b1 := kernel.NewUUID()
	b2 := kernel.NewUUID()

	i, err := ingredient.RestoreIngredient(kernel.NewUUID(), "Basil", false, []kernel.UUID{b1})

	require.NoError(t, err)
	assert.True(t, i.IsBranchExpired(b1))
	assert.True(t, i.IsExpiredAt(b1))
	assert.False(t, i.IsExpiredAt(b2))
	assert.Len(t, i.ExpiredBranches(), 1)

	_, err = ingredient.RestoreIngredient(kernel.NewUUID(), "Basil", false, []kernel.UUID{{}})
	require.Error(t, err)
}

func TestIngredient_ExpiredFlags(t *testing.T) {
	branchID := kernel.NewUUID()
	other := kernel.NewUUID()
	i, _ := ingredient.NewIngredient(kernel.NewUUID(), "Tomato")

	t.Run("branch flag is scoped to one branch", func(t *testing.T) {
		changed, err := i.SetBranchExpired(branchID, true)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, i.IsExpiredAt(branchID))
		assert.False(t, i.IsExpiredAt(other))

		changed, err = i.SetBranchExpired(branchID, true)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("global flag applies everywhere", func(t *testing.T) {
		assert.True(t, i.SetExpired(true))
		assert.True(t, i.IsExpiredAt(other))
		assert.False(t, i.SetExpired(true))
	})

	t.Run("clearing restores state", func(t *testing.T) {
		i.SetExpired(false)
		changed, err := i.SetBranchExpired(branchID, false)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.False(t, i.IsExpiredAt(branchID))
	})

	t.Run("invalid branch id", func(t *testing.T) {
		_, err := i.SetBranchExpired(kernel.UUID{}, true)

		require.Error(t, err)
	})
}

func TestBranchAvailability(t *testing.T) {
	branchID := kernel.NewUUID()
	ingredientID := kernel.NewUUID()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create override", func(t *testing.T) {
		a, err := ingredient.NewBranchAvailability(branchID, ingredientID, false, "manager", now)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.BranchID().IsEqual(branchID))
		assert.True(t, a.IngredientID().IsEqual(ingredientID))
		assert.False(t, a.IsAvailable())
		assert.Equal(t, "manager", a.UpdatedBy())
		assert.Equal(t, now, a.UpdatedAt())
	})

	t.Run("should require audit fields", func(t *testing.T) {
		_, err := ingredient.NewBranchAvailability(branchID, ingredientID, true, "", time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "updatedBy")
	})

	t.Run("set updates in place", func(t *testing.T) {
		a, _ := ingredient.NewBranchAvailability(branchID, ingredientID, false, "manager", now)
		later := now.Add(time.Hour)

		require.NoError(t, a.Set(true, "chef", later))

		assert.True(t, a.IsAvailable())
		assert.Equal(t, "chef", a.UpdatedBy())
		assert.Equal(t, later, a.UpdatedAt())
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var a ingredient.BranchAvailability
		require.ErrorIs(t, a.Validate(), ingredient.ErrBranchAvailabilityIsNotConstructed)
	})
}
