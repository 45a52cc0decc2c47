package queries

import (
	"context"

	"restaurant/internal/core/application/availability"
	"restaurant/internal/core/ports"
)

type GetDishAvailabilityQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetDishAvailabilityQueryHandler(uowFactory ports.UnitOfWorkFactory) GetDishAvailabilityQueryHandler {
	return GetDishAvailabilityQueryHandler{uowFactory: uowFactory}
}

// Handle rejects a dish that is not on a menu of the queried branch with a
// business rule violation.
func (h GetDishAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetDishAvailabilityQuery,
) (GetDishAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDishAvailabilityQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	dish, err := uow.MenuRepository().GetDish(ctx, query.DishID())
	if err != nil {
		return GetDishAvailabilityQueryResponse{}, err
	}

	reader := availability.NewReader(uow.IngredientRepository(), uow.AvailabilityRepository())
	available, err := reader.Dish(ctx, dish, query.BranchID())
	if err != nil {
		return GetDishAvailabilityQueryResponse{}, err
	}

	return GetDishAvailabilityQueryResponse{
		DishID:    dish.ID(),
		BranchID:  query.BranchID(),
		Name:      dish.Name(),
		Available: available,
	}, nil
}
