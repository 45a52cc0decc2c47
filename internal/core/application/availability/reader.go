// Package availability resolves effective availability against the store.
//
// Reader wraps the pure resolver with repository lookups and memoises every
// ingredient it resolves, so a menu with many dishes sharing ingredients costs
// one lookup per ingredient.
package availability

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type cacheKey struct {
	branchID     kernel.UUID
	ingredientID kernel.UUID
}

// Reader is scoped to one request and is not safe for concurrent use.
type Reader struct {
	ingredients ports.IngredientRepository
	overrides   ports.AvailabilityRepository
	resolver    services.AvailabilityResolver
	cache       map[cacheKey]bool
}

func NewReader(ingredients ports.IngredientRepository, overrides ports.AvailabilityRepository) *Reader {
	return &Reader{
		ingredients: ingredients,
		overrides:   overrides,
		resolver:    services.NewAvailabilityResolver(),
		cache:       make(map[cacheKey]bool),
	}
}

// Ingredient returns the effective availability of ingredientID at branchID.
func (r *Reader) Ingredient(ctx context.Context, ingredientID, branchID kernel.UUID) (bool, error) {
	key := cacheKey{branchID: branchID, ingredientID: ingredientID}
	if v, ok := r.cache[key]; ok {
		return v, nil
	}

	ing, err := r.ingredients.Get(ctx, ingredientID)
	if err != nil {
		return false, err
	}

	override, err := r.overrides.Get(ctx, branchID, ingredientID)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return false, err
		}
		override = nil
	}

	v, err := r.resolver.ResolveIngredient(ing, override, branchID)
	if err != nil {
		return false, err
	}

	r.cache[key] = v
	return v, nil
}

// Dish returns the effective availability of dish at branchID.
func (r *Reader) Dish(ctx context.Context, dish *menu.Dish, branchID kernel.UUID) (bool, error) {
	return r.resolver.ResolveDish(dish, branchID, func(ingredientID kernel.UUID) (bool, error) {
		return r.Ingredient(ctx, ingredientID, branchID)
	})
}

// Prefetch resolves ingredientIDs at branchID with one ingredient query and one
// override query, filling the cache for subsequent Dish calls.
func (r *Reader) Prefetch(ctx context.Context, branchID kernel.UUID, ingredientIDs []kernel.UUID) error {
	if len(ingredientIDs) == 0 {
		return nil
	}

	ingredients, err := r.ingredients.GetMany(ctx, ingredientIDs)
	if err != nil {
		return err
	}

	records, err := r.overrides.ListByBranch(ctx, branchID)
	if err != nil {
		return err
	}
	byIngredient := make(map[kernel.UUID]*ingredient.BranchAvailability, len(records))
	for _, rec := range records {
		byIngredient[rec.IngredientID()] = rec
	}

	for _, ing := range ingredients {
		v, err := r.resolver.ResolveIngredient(ing, byIngredient[ing.ID()], branchID)
		if err != nil {
			return err
		}
		r.cache[cacheKey{branchID: branchID, ingredientID: ing.ID()}] = v
	}

	return nil
}
