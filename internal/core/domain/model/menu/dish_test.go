package menu_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenu(t *testing.T) *menu.Menu {
	t.Helper()
	m, err := menu.NewMenu(kernel.NewUUID(), kernel.NewUUID(), "Main")
	require.NoError(t, err)
	return m
}

func link(t *testing.T, required bool) menu.IngredientLink {
	t.Helper()
	l, err := menu.NewIngredientLink(kernel.NewUUID(), required, "100 g")
	require.NoError(t, err)
	return l
}

func TestNewMenu(t *testing.T) {
	m := newMenu(t)
	require.NoError(t, m.Validate())
	assert.Equal(t, "Main", m.Name())

	_, err := menu.NewMenu(kernel.UUID{}, kernel.UUID{}, "")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestNewDish(t *testing.T) {
	m := newMenu(t)

	t.Run("should inherit branch from menu and be available", func(t *testing.T) {
		required := link(t, true)
		optional := link(t, false)

		d, err := menu.NewDish(kernel.NewUUID(), m, "Pizza", 1250, []menu.IngredientLink{required, optional})

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.MenuID().IsEqual(m.ID()))
		assert.True(t, d.BranchID().IsEqual(m.BranchID()))
		assert.True(t, d.BelongsTo(m.BranchID()))
		assert.False(t, d.BelongsTo(kernel.NewUUID()))
		assert.True(t, d.IsAvailable())
		assert.Equal(t, int64(1250), d.PriceCents())
		assert.Len(t, d.Links(), 2)
		assert.Equal(t, []kernel.UUID{required.IngredientID()}, d.RequiredIngredientIDs())
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := menu.NewDish(kernel.NewUUID(), m, "Pizza", -1, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject duplicate links", func(t *testing.T) {
		l := link(t, true)

		_, err := menu.NewDish(kernel.NewUUID(), m, "Pizza", 100, []menu.IngredientLink{l, l})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero value link", func(t *testing.T) {
		_, err := menu.NewDish(kernel.NewUUID(), m, "Pizza", 100, []menu.IngredientLink{{}})

		require.ErrorIs(t, err, menu.ErrIngredientLinkIsNotConstructed)
	})

	t.Run("should reject unconstructed menu", func(t *testing.T) {
		_, err := menu.NewDish(kernel.NewUUID(), nil, "Pizza", 100, nil)

		require.ErrorIs(t, err, menu.ErrMenuIsNotConstructed)
	})
}

func TestDish_Mutations(t *testing.T) {
	d, err := menu.NewDish(kernel.NewUUID(), newMenu(t), "Soup", 500, nil)
	require.NoError(t, err)

	assert.True(t, d.SetAvailable(false))
	assert.False(t, d.IsAvailable())
	assert.False(t, d.SetAvailable(false))

	require.NoError(t, d.SetPrice(700))
	assert.Equal(t, int64(700), d.PriceCents())
	require.Error(t, d.SetPrice(-5))
	assert.Equal(t, int64(700), d.PriceCents())

	links := d.Links()
	assert.Empty(t, links)
	assert.Empty(t, d.RequiredIngredientIDs())
}

func TestRestoreDish(t *testing.T) {
	d, err := menu.RestoreDish(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Salad", 300, false, nil)

	require.NoError(t, err)
	assert.False(t, d.IsAvailable())
}
