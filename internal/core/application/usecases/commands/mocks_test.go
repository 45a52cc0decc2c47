package commands_test

import (
	"context"
	"sync"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/branch"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Add(ctx context.Context, b *branch.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*branch.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	args := m.Called(ctx)
	bs, _ := args.Get(0).([]*branch.Branch)
	return bs, args.Error(1)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) AddMenu(ctx context.Context, mn *menu.Menu) error {
	return m.Called(ctx, mn).Error(0)
}

func (m *MockMenuRepository) GetMenu(ctx context.Context, id kernel.UUID) (*menu.Menu, error) {
	args := m.Called(ctx, id)
	mn, _ := args.Get(0).(*menu.Menu)
	return mn, args.Error(1)
}

func (m *MockMenuRepository) AddDish(ctx context.Context, d *menu.Dish) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockMenuRepository) UpdateDish(ctx context.Context, d *menu.Dish) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockMenuRepository) GetDish(ctx context.Context, id kernel.UUID) (*menu.Dish, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*menu.Dish)
	return d, args.Error(1)
}

func (m *MockMenuRepository) GetDishes(ctx context.Context, ids []kernel.UUID) ([]*menu.Dish, error) {
	args := m.Called(ctx, ids)
	ds, _ := args.Get(0).([]*menu.Dish)
	return ds, args.Error(1)
}

func (m *MockMenuRepository) ListDishesByBranch(ctx context.Context, branchID kernel.UUID) ([]*menu.Dish, error) {
	args := m.Called(ctx, branchID)
	ds, _ := args.Get(0).([]*menu.Dish)
	return ds, args.Error(1)
}

type MockIngredientRepository struct{ mock.Mock }

func (m *MockIngredientRepository) Add(ctx context.Context, i *ingredient.Ingredient) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIngredientRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ingredient.Ingredient, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*ingredient.Ingredient)
	return i, args.Error(1)
}

func (m *MockIngredientRepository) SaveExpired(ctx context.Context, i *ingredient.Ingredient) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIngredientRepository) SaveBranchExpired(ctx context.Context, i *ingredient.Ingredient, branchID kernel.UUID) error {
	return m.Called(ctx, i, branchID).Error(0)
}

func (m *MockIngredientRepository) Get(ctx context.Context, id kernel.UUID) (*ingredient.Ingredient, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*ingredient.Ingredient)
	return i, args.Error(1)
}

func (m *MockIngredientRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*ingredient.Ingredient, error) {
	args := m.Called(ctx, ids)
	is, _ := args.Get(0).([]*ingredient.Ingredient)
	return is, args.Error(1)
}

type MockAvailabilityRepository struct{ mock.Mock }

func (m *MockAvailabilityRepository) Get(
	ctx context.Context,
	branchID, ingredientID kernel.UUID,
) (*ingredient.BranchAvailability, error) {
	args := m.Called(ctx, branchID, ingredientID)
	r, _ := args.Get(0).(*ingredient.BranchAvailability)
	return r, args.Error(1)
}

func (m *MockAvailabilityRepository) ListByBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*ingredient.BranchAvailability, error) {
	args := m.Called(ctx, branchID)
	rs, _ := args.Get(0).([]*ingredient.BranchAvailability)
	return rs, args.Error(1)
}

func (m *MockAvailabilityRepository) Upsert(ctx context.Context, r *ingredient.BranchAvailability) error {
	return m.Called(ctx, r).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ExistsNumber(ctx context.Context, n order.Number) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

// MockUoW satisfies every UoW flavour the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) BranchRepository() ports.BranchRepository {
	return m.Called().Get(0).(ports.BranchRepository)
}

func (m *MockUoW) MenuRepository() ports.MenuRepository {
	return m.Called().Get(0).(ports.MenuRepository)
}

func (m *MockUoW) IngredientRepository() ports.IngredientRepository {
	return m.Called().Get(0).(ports.IngredientRepository)
}

func (m *MockUoW) AvailabilityRepository() ports.AvailabilityRepository {
	return m.Called().Get(0).(ports.AvailabilityRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockMenuUoWFactory struct{ mock.Mock }

func (m *MockMenuUoWFactory) Create() commands.MenuUoW {
	return m.Called().Get(0).(commands.MenuUoW)
}

type MockAvailabilityUoWFactory struct{ mock.Mock }

func (m *MockAvailabilityUoWFactory) Create() commands.AvailabilityUoW {
	return m.Called().Get(0).(commands.AvailabilityUoW)
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingEmitter) Emit(_ context.Context, e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEmitter) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]event.Event, len(r.events))
	copy(res, r.events)
	return res
}

// wireUoW stubs Begin/Rollback and every repository getter for any number of calls.
func wireUoW(uow *MockUoW, repos repoSet) {
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	if repos.branches != nil {
		uow.On("BranchRepository").Return(repos.branches).Maybe()
	}
	if repos.menus != nil {
		uow.On("MenuRepository").Return(repos.menus).Maybe()
	}
	if repos.ingredients != nil {
		uow.On("IngredientRepository").Return(repos.ingredients).Maybe()
	}
	if repos.availability != nil {
		uow.On("AvailabilityRepository").Return(repos.availability).Maybe()
	}
	if repos.orders != nil {
		uow.On("OrderRepository").Return(repos.orders).Maybe()
	}
}

type repoSet struct {
	branches     *MockBranchRepository
	menus        *MockMenuRepository
	ingredients  *MockIngredientRepository
	availability *MockAvailabilityRepository
	orders       *MockOrderRepository
}

func newRepoSet() repoSet {
	return repoSet{
		branches:     new(MockBranchRepository),
		menus:        new(MockMenuRepository),
		ingredients:  new(MockIngredientRepository),
		availability: new(MockAvailabilityRepository),
		orders:       new(MockOrderRepository),
	}
}
