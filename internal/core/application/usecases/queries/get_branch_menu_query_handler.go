package queries

import (
	"context"

	"restaurant/internal/core/application/availability"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
)

type GetBranchMenuQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetBranchMenuQueryHandler(uowFactory ports.UnitOfWorkFactory) GetBranchMenuQueryHandler {
	return GetBranchMenuQueryHandler{uowFactory: uowFactory}
}

// Handle prefetches every required ingredient of the branch in two queries
// before resolving dishes, so the cost does not grow with the menu size.
func (h GetBranchMenuQueryHandler) Handle(
	ctx context.Context,
	query GetBranchMenuQuery,
) (GetBranchMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBranchMenuQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	b, err := uow.BranchRepository().Get(ctx, query.BranchID())
	if err != nil {
		return GetBranchMenuQueryResponse{}, err
	}

	dishes, err := uow.MenuRepository().ListDishesByBranch(ctx, b.ID())
	if err != nil {
		return GetBranchMenuQueryResponse{}, err
	}

	seen := make(map[kernel.UUID]struct{})
	var ingredientIDs []kernel.UUID
	for _, d := range dishes {
		for _, id := range d.RequiredIngredientIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ingredientIDs = append(ingredientIDs, id)
		}
	}

	reader := availability.NewReader(uow.IngredientRepository(), uow.AvailabilityRepository())
	if err = reader.Prefetch(ctx, b.ID(), ingredientIDs); err != nil {
		return GetBranchMenuQueryResponse{}, err
	}

	resp := GetBranchMenuQueryResponse{
		BranchID:   b.ID(),
		BranchName: b.Name(),
		Dishes:     make([]MenuDishResponse, 0, len(dishes)),
	}
	for _, d := range dishes {
		available, err := reader.Dish(ctx, d, b.ID())
		if err != nil {
			return GetBranchMenuQueryResponse{}, err
		}
		resp.Dishes = append(resp.Dishes, MenuDishResponse{
			ID:         d.ID(),
			MenuID:     d.MenuID(),
			Name:       d.Name(),
			PriceCents: d.PriceCents(),
			Available:  available,
		})
	}

	return resp, nil
}
