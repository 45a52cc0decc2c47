package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/branch"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

var timeFixture = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// world is two branches, each with one menu. Pizza at A needs cheese;
// burger belongs to B.
type world struct {
	branchA, branchB *branch.Branch
	cheese           *ingredient.Ingredient
	pizza, burger    *menu.Dish
}

func newWorld(t *testing.T) world {
	t.Helper()

	coords, err := kernel.NewCoordinates(52.52, 13.40)
	require.NoError(t, err)
	a, err := branch.NewBranch(kernel.NewUUID(), "Mitte", "Alexanderplatz 1", coords)
	require.NoError(t, err)
	b, err := branch.NewBranch(kernel.NewUUID(), "Kreuzberg", "Oranienstr 2", coords)
	require.NoError(t, err)

	cheese, err := ingredient.NewIngredient(kernel.NewUUID(), "Cheese")
	require.NoError(t, err)

	menuA, err := menu.NewMenu(kernel.NewUUID(), a.ID(), "Main")
	require.NoError(t, err)
	menuB, err := menu.NewMenu(kernel.NewUUID(), b.ID(), "Main")
	require.NoError(t, err)

	link, err := menu.NewIngredientLink(cheese.ID(), true, "g")
	require.NoError(t, err)
	pizza, err := menu.NewDish(kernel.NewUUID(), menuA, "Pizza", 1200, []menu.IngredientLink{link})
	require.NoError(t, err)
	burger, err := menu.NewDish(kernel.NewUUID(), menuB, "Burger", 900, nil)
	require.NoError(t, err)

	return world{branchA: a, branchB: b, cheese: cheese, pizza: pizza, burger: burger}
}

func branchUser(t *testing.T, b *branch.Branch) *access.Principal {
	t.Helper()
	p, err := access.NewBranchUser(b.ID(), "clerk@"+b.Name())
	require.NoError(t, err)
	return p
}

func notFound(param string, id kernel.UUID) error {
	return errs.NewObjectNotFoundError(param, id)
}

func mustNumber(t *testing.T, v int) order.Number {
	t.Helper()
	n, err := order.NewNumber(v)
	require.NoError(t, err)
	return n
}

// sequence returns a generator yielding numbers in order, repeating the last one.
func sequence(numbers ...order.Number) func() order.Number {
	i := 0
	return func() order.Number {
		n := numbers[min(i, len(numbers)-1)]
		i++
		return n
	}
}

func newStoredOrder(t *testing.T, branchID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1, 500)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), mustNumber(t, 123456), branchID, "Bob", "+100",
		[]order.Item{item}, timeFixture)
	require.NoError(t, err)

	path := map[order.Status][]order.Status{
		order.Pending:        nil,
		order.Accepted:       {order.Accepted},
		order.Preparing:      {order.Accepted, order.Preparing},
		order.Ready:          {order.Accepted, order.Preparing, order.Ready},
		order.OutForDelivery: {order.Accepted, order.Preparing, order.Ready, order.OutForDelivery},
		order.Completed:      {order.Accepted, order.Preparing, order.Ready, order.Completed},
	}[status]
	for _, s := range path {
		require.NoError(t, o.TransitionTo(s, "", timeFixture))
	}
	return o
}
