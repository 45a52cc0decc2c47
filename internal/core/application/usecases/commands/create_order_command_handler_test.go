package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	world
	repos   repoSet
	uow     *MockUoW
	factory *MockUoWFactory
	emitter *recordingEmitter
}

func newCreateOrderFixture(t *testing.T) *createOrderFixture {
	t.Helper()
	f := &createOrderFixture{
		world:   newWorld(t),
		repos:   newRepoSet(),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
		emitter: new(recordingEmitter),
	}
	wireUoW(f.uow, f.repos)
	f.factory.On("Create").Return(f.uow)
	return f
}

func (f *createOrderFixture) handler(numbers commands.NumberGenerator) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(f.factory, f.emitter, numbers, discardLogger())
}

// expectPizzaOrderable stubs branch A, the pizza and cheese with no override.
func (f *createOrderFixture) expectPizzaOrderable() {
	f.repos.branches.On("Get", mock.Anything, f.branchA.ID()).Return(f.branchA, nil)
	f.repos.menus.On("GetDishes", mock.Anything, []kernel.UUID{f.pizza.ID()}).
		Return([]*menu.Dish{f.pizza}, nil)
	f.repos.ingredients.On("Get", mock.Anything, f.cheese.ID()).Return(f.cheese, nil)
	f.repos.availability.On("Get", mock.Anything, f.branchA.ID(), f.cheese.ID()).
		Return(nil, notFound("availability", f.cheese.ID()))
}

func (f *createOrderFixture) pizzaCommand(t *testing.T, principal *access.Principal) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(f.branchA.ID(), "Alice", "+15550100",
		[]commands.OrderItemRequest{{DishID: f.pizza.ID(), Qty: 2}}, principal)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	n := mustNumber(t, 424242)
	f.repos.orders.On("ExistsNumber", mock.Anything, n).Return(false, nil).Once()
	f.repos.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()

	h := f.handler(sequence(n))
	o, err := h.Handle(t.Context(), f.pizzaCommand(t, branchUser(t, f.branchA)))
	require.NoError(t, err)

	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, n, o.Number())
	assert.Equal(t, int64(2400), o.TotalCents())
	require.Len(t, o.Items(), 1)
	assert.Equal(t, int64(1200), o.Items()[0].PriceCents())

	events := f.emitter.Events()
	require.Len(t, events, 1)
	assert.Equal(t, event.NewOrder, events[0].Name)
	assert.Equal(t, event.Topic(f.branchA.ID()), events[0].Topic)

	f.repos.orders.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PriceChangeDoesNotAffectSnapshot(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	f.repos.orders.On("ExistsNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.repos.orders.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)

	h := f.handler(nil)
	o, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.NoError(t, err)

	require.NoError(t, f.pizza.SetPrice(9999))
	assert.Equal(t, int64(2400), o.TotalCents())
	assert.Equal(t, int64(1200), o.Items()[0].PriceCents())
}

func TestCreateOrderCommandHandler_Handle_CrossBranchDishRejected(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.repos.branches.On("Get", mock.Anything, f.branchA.ID()).Return(f.branchA, nil)
	f.repos.menus.On("GetDishes", mock.Anything, []kernel.UUID{f.pizza.ID(), f.burger.ID()}).
		Return([]*menu.Dish{f.pizza, f.burger}, nil)
	f.repos.ingredients.On("Get", mock.Anything, f.cheese.ID()).Return(f.cheese, nil)
	f.repos.availability.On("Get", mock.Anything, f.branchA.ID(), f.cheese.ID()).
		Return(nil, notFound("availability", f.cheese.ID()))

	cmd, err := commands.NewCreateOrderCommand(f.branchA.ID(), "Alice", "1", []commands.OrderItemRequest{
		{DishID: f.pizza.ID(), Qty: 1},
		{DishID: f.burger.ID(), Qty: 1},
	}, branchUser(t, f.branchA))
	require.NoError(t, err)

	h := f.handler(nil)
	o, err := h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	assert.Contains(t, err.Error(), f.burger.ID().String())
	assert.Nil(t, o)

	f.repos.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, f.emitter.Events())
}

func TestCreateOrderCommandHandler_Handle_UnavailableDishRejected(t *testing.T) {
	f := newCreateOrderFixture(t)
	changed, err := f.cheese.SetBranchExpired(f.branchA.ID(), true)
	require.NoError(t, err)
	require.True(t, changed)

	override, err := ingredient.NewBranchAvailability(f.branchA.ID(), f.cheese.ID(), true, "clerk", timeFixture)
	require.NoError(t, err)

	f.repos.branches.On("Get", mock.Anything, f.branchA.ID()).Return(f.branchA, nil)
	f.repos.menus.On("GetDishes", mock.Anything, mock.Anything).Return([]*menu.Dish{f.pizza}, nil)
	f.repos.ingredients.On("Get", mock.Anything, f.cheese.ID()).Return(f.cheese, nil)
	f.repos.availability.On("Get", mock.Anything, f.branchA.ID(), f.cheese.ID()).Return(override, nil)

	h := f.handler(nil)
	_, err = h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	assert.Contains(t, err.Error(), "unavailable")
	f.repos.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownDishRejected(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.repos.branches.On("Get", mock.Anything, f.branchA.ID()).Return(f.branchA, nil)
	f.repos.menus.On("GetDishes", mock.Anything, mock.Anything).Return([]*menu.Dish{}, nil)

	h := f.handler(nil)
	_, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolation)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCreateOrderCommandHandler_Handle_NumberCollisionIsRetried(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	first, second := mustNumber(t, 111111), mustNumber(t, 222222)

	f.repos.orders.On("ExistsNumber", mock.Anything, first).Return(false, nil).Once()
	f.repos.orders.On("ExistsNumber", mock.Anything, second).Return(false, nil).Once()
	// A concurrent writer takes the first number between pre-check and insert.
	f.repos.orders.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Number() == first
	})).Return(errs.NewConflictError("orderNumber", first.Value())).Once()
	f.repos.orders.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Number() == second
	})).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()

	h := f.handler(sequence(first, second))
	o, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.NoError(t, err)
	assert.Equal(t, second, o.Number())

	f.factory.AssertNumberOfCalls(t, "Create", 2)
	f.repos.orders.AssertExpectations(t)
	require.Len(t, f.emitter.Events(), 1)
}

func TestCreateOrderCommandHandler_Handle_PreCheckCollisionIsRetried(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	taken, free := mustNumber(t, 333333), mustNumber(t, 444444)

	f.repos.orders.On("ExistsNumber", mock.Anything, taken).Return(true, nil).Once()
	f.repos.orders.On("ExistsNumber", mock.Anything, free).Return(false, nil).Once()
	f.repos.orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()

	h := f.handler(sequence(taken, free))
	o, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.NoError(t, err)
	assert.Equal(t, free, o.Number())
}

func TestCreateOrderCommandHandler_Handle_NumberSpaceExhausted(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	f.repos.orders.On("ExistsNumber", mock.Anything, mock.Anything).Return(true, nil)

	h := f.handler(sequence(mustNumber(t, 555555)))
	_, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.ErrorIs(t, err, commands.ErrOrderNumberExhausted)

	f.repos.orders.AssertNumberOfCalls(t, "ExistsNumber", commands.MaxOrderNumberAttempts)
	f.repos.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.Empty(t, f.emitter.Events())
}

func TestCreateOrderCommandHandler_Handle_OtherConflictIsNotRetried(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	f.repos.orders.On("ExistsNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.repos.orders.On("Add", mock.Anything, mock.Anything).
		Return(errs.NewConflictError("orderId", "x")).Once()

	h := f.handler(nil)
	_, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.ErrorIs(t, err, errs.ErrConflict)
	f.factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateOrderCommandHandler_Handle_Authorization(t *testing.T) {
	t.Run("no principal", func(t *testing.T) {
		f := newCreateOrderFixture(t)
		h := f.handler(nil)
		_, err := h.Handle(t.Context(), f.pizzaCommand(t, nil))
		require.ErrorIs(t, err, errs.ErrAuthenticationRequired)
		f.factory.AssertNotCalled(t, "Create")
	})

	t.Run("branch user of another branch", func(t *testing.T) {
		f := newCreateOrderFixture(t)
		h := f.handler(nil)
		_, err := h.Handle(t.Context(), f.pizzaCommand(t, branchUser(t, f.branchB)))
		require.ErrorIs(t, err, errs.ErrAccessDenied)
		f.factory.AssertNotCalled(t, "Create")
	})
}

func TestCreateOrderCommandHandler_Handle_BranchNotFound(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.repos.branches.On("Get", mock.Anything, f.branchA.ID()).
		Return(nil, notFound("branchID", f.branchA.ID()))

	h := f.handler(nil)
	_, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.repos.menus.AssertNotCalled(t, "GetDishes", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	f := newCreateOrderFixture(t)
	f.expectPizzaOrderable()
	f.repos.orders.On("ExistsNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.repos.orders.On("Add", mock.Anything, mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once()

	h := f.handler(nil)
	_, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.EqualError(t, err, "commit error")
	assert.Empty(t, f.emitter.Events())
	f.uow.AssertCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	f := newCreateOrderFixture(t)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, f.emitter, nil, discardLogger())
	_, err := h.Handle(t.Context(), f.pizzaCommand(t, access.NewAdmin("root")))
	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	f := newCreateOrderFixture(t)
	h := f.handler(nil)
	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}
