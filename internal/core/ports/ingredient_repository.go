package ports

import (
	"context"

	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
)

// IngredientRepository persists Ingredient aggregates including their
// per-branch expired flags. Name is unique.
type IngredientRepository interface {
	Add(ctx context.Context, aggregate *ingredient.Ingredient) error
	Get(ctx context.Context, id kernel.UUID) (*ingredient.Ingredient, error)

	// GetForUpdate is Get that also locks the ingredient until the
	// transaction ends. Expiration toggles read through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*ingredient.Ingredient, error)

	// SaveExpired persists only the global expired flag.
	SaveExpired(ctx context.Context, aggregate *ingredient.Ingredient) error

	// SaveBranchExpired persists only the expired flag of branchID.
	SaveBranchExpired(ctx context.Context, aggregate *ingredient.Ingredient, branchID kernel.UUID) error

	// GetMany returns the ingredients that exist among ids.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*ingredient.Ingredient, error)
}

// AvailabilityRepository persists BranchAvailability override records keyed
// by (branchID, ingredientID).
type AvailabilityRepository interface {
	// Get returns errs.ObjectNotFoundError when no override exists.
	Get(ctx context.Context, branchID, ingredientID kernel.UUID) (*ingredient.BranchAvailability, error)

	ListByBranch(ctx context.Context, branchID kernel.UUID) ([]*ingredient.BranchAvailability, error)

	// Upsert creates the record on first write and updates it in place afterwards.
	Upsert(ctx context.Context, record *ingredient.BranchAvailability) error
}
