package queries_test

import (
	"context"

	"restaurant/internal/core/domain/model/branch"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
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

// stubUoW hands out repositories; queries never begin a transaction.
type stubUoW struct {
	branches     *MockBranchRepository
	menus        *MockMenuRepository
	ingredients  *MockIngredientRepository
	availability *MockAvailabilityRepository
}

func newStubUoW() *stubUoW {
	return &stubUoW{
		branches:     new(MockBranchRepository),
		menus:        new(MockMenuRepository),
		ingredients:  new(MockIngredientRepository),
		availability: new(MockAvailabilityRepository),
	}
}

func (s *stubUoW) Create() ports.UnitOfWork { return s }

func (s *stubUoW) Begin(context.Context) error    { panic("queries must not begin transactions") }
func (s *stubUoW) Commit(context.Context) error   { panic("queries must not commit") }
func (s *stubUoW) Rollback(context.Context) error { panic("queries must not roll back") }

func (s *stubUoW) BranchRepository() ports.BranchRepository             { return s.branches }
func (s *stubUoW) MenuRepository() ports.MenuRepository                 { return s.menus }
func (s *stubUoW) IngredientRepository() ports.IngredientRepository     { return s.ingredients }
func (s *stubUoW) AvailabilityRepository() ports.AvailabilityRepository { return s.availability }
func (s *stubUoW) OrderRepository() ports.OrderRepository               { return nil }
