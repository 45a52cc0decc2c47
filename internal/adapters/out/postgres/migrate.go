package postgres

import (
	"restaurant/internal/adapters/out/postgres/availabilityrepo"
	"restaurant/internal/adapters/out/postgres/branchrepo"
	"restaurant/internal/adapters/out/postgres/ingredientrepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&branchrepo.BranchDTO{},
		&menurepo.MenuDTO{},
		&menurepo.DishDTO{},
		&menurepo.DishIngredientLinkDTO{},
		&ingredientrepo.IngredientDTO{},
		&ingredientrepo.IngredientBranchExpirationDTO{},
		&availabilityrepo.BranchAvailabilityDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Tables lists the table names of Models, for truncation in tests.
const Tables = "branches, menus, dishes, dish_ingredient_links, ingredients, " +
	"ingredient_branch_expirations, branch_ingredient_availability, orders, order_items"
