package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type GetIngredientAvailabilityQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	resolver   services.AvailabilityResolver
}

func NewGetIngredientAvailabilityQueryHandler(uowFactory ports.UnitOfWorkFactory) GetIngredientAvailabilityQueryHandler {
	return GetIngredientAvailabilityQueryHandler{
		uowFactory: uowFactory,
		resolver:   services.NewAvailabilityResolver(),
	}
}

func (h GetIngredientAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetIngredientAvailabilityQuery,
) (GetIngredientAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetIngredientAvailabilityQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	if _, err := uow.BranchRepository().Get(ctx, query.BranchID()); err != nil {
		return GetIngredientAvailabilityQueryResponse{}, err
	}

	ing, err := uow.IngredientRepository().Get(ctx, query.IngredientID())
	if err != nil {
		return GetIngredientAvailabilityQueryResponse{}, err
	}

	override, err := uow.AvailabilityRepository().Get(ctx, query.BranchID(), query.IngredientID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return GetIngredientAvailabilityQueryResponse{}, err
		}
		override = nil
	}

	available, err := h.resolver.ResolveIngredient(ing, override, query.BranchID())
	if err != nil {
		return GetIngredientAvailabilityQueryResponse{}, err
	}

	resp := GetIngredientAvailabilityQueryResponse{
		IngredientID:  ing.ID(),
		BranchID:      query.BranchID(),
		Name:          ing.Name(),
		Available:     available,
		Expired:       ing.IsExpired(),
		BranchExpired: ing.IsBranchExpired(query.BranchID()),
	}
	if override != nil {
		v := override.IsAvailable()
		resp.Override = &v
	}

	return resp, nil
}
