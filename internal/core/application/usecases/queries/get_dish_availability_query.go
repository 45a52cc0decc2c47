package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetDishAvailabilityQueryIsNotConstructed = errors.New(
	"GetDishAvailabilityQuery must be created via NewGetDishAvailabilityQuery constructor",
)

type GetDishAvailabilityQuery struct {
	dishID   kernel.UUID
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDishAvailabilityQuery(dishID, branchID kernel.UUID) (GetDishAvailabilityQuery, error) {
	var errList []error
	if err := dishID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("dishID", err))
	}
	if err := branchID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("branchID", err))
	}
	if err := errors.Join(errList...); err != nil {
		return GetDishAvailabilityQuery{}, err
	}

	return GetDishAvailabilityQuery{dishID: dishID, branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDishAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetDishAvailabilityQueryIsNotConstructed)
}

func (q GetDishAvailabilityQuery) DishID() kernel.UUID {
	return q.dishID
}

func (q GetDishAvailabilityQuery) BranchID() kernel.UUID {
	return q.branchID
}

type GetDishAvailabilityQueryResponse struct {
	DishID    kernel.UUID
	BranchID  kernel.UUID
	Name      string
	Available bool
}
