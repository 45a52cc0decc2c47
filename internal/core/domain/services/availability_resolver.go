package services

import (
	"fmt"

	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"
)

// IngredientLookup resolves effective availability of one ingredient at the
// branch being evaluated.
type IngredientLookup func(ingredientID kernel.UUID) (bool, error)

// AvailabilityResolver computes effective availability.
//
// Ingredient at branch = override.available (true when there is no override)
// AND NOT global expired AND NOT branch expired.
//
// Dish at branch = dish.available AND every required ingredient is available
// at the branch. Optional ingredients are never consulted.
type AvailabilityResolver struct{}

func NewAvailabilityResolver() AvailabilityResolver {
	return AvailabilityResolver{}
}

// ResolveIngredient evaluates ing at branchID. override may be nil.
func (r AvailabilityResolver) ResolveIngredient(
	ing *ingredient.Ingredient,
	override *ingredient.BranchAvailability,
	branchID kernel.UUID,
) (bool, error) {
	if err := ing.Validate(); err != nil {
		return false, err
	}
	if err := branchID.Validate(); err != nil {
		return false, err
	}

	base := true
	if override != nil {
		if err := override.Validate(); err != nil {
			return false, err
		}
		if !override.BranchID().IsEqual(branchID) || !override.IngredientID().IsEqual(ing.ID()) {
			return false, errs.NewValueIsInvalidErrorWithCause("override",
				fmt.Errorf("override is for ingredient %s at branch %s", override.IngredientID(), override.BranchID()))
		}
		base = override.IsAvailable()
	}

	return base && !ing.IsExpiredAt(branchID), nil
}

// ResolveDish evaluates dish at branchID. The kill-switch short-circuits
// before lookup is called; lookup stops at the first unavailable ingredient.
func (r AvailabilityResolver) ResolveDish(dish *menu.Dish, branchID kernel.UUID, lookup IngredientLookup) (bool, error) {
	if err := dish.Validate(); err != nil {
		return false, err
	}
	if !dish.BelongsTo(branchID) {
		return false, errs.NewBusinessRuleViolationError(
			fmt.Sprintf("dish %s does not belong to branch %s", dish.ID(), branchID))
	}

	if !dish.IsAvailable() {
		return false, nil
	}

	for _, ingredientID := range dish.RequiredIngredientIDs() {
		ok, err := lookup(ingredientID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}
