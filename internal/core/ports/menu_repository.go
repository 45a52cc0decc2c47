package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
)

// MenuRepository persists menus and dishes together with their ingredient links.
// Dishes are returned with the branch of their owning menu.
type MenuRepository interface {
	AddMenu(ctx context.Context, m *menu.Menu) error
	GetMenu(ctx context.Context, id kernel.UUID) (*menu.Menu, error)

	AddDish(ctx context.Context, dish *menu.Dish) error

	// UpdateDish persists the mutable dish fields (name, price, kill-switch).
	UpdateDish(ctx context.Context, dish *menu.Dish) error

	GetDish(ctx context.Context, id kernel.UUID) (*menu.Dish, error)

	// GetDishes returns the dishes that exist among ids; missing ids are simply absent.
	GetDishes(ctx context.Context, ids []kernel.UUID) ([]*menu.Dish, error)

	// ListDishesByBranch walks branch -> menus -> dishes.
	ListDishesByBranch(ctx context.Context, branchID kernel.UUID) ([]*menu.Dish, error)
}
