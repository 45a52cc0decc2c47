package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetIngredientAvailabilityQueryIsNotConstructed = errors.New(
	"GetIngredientAvailabilityQuery must be created via NewGetIngredientAvailabilityQuery constructor",
)

type GetIngredientAvailabilityQuery struct {
	ingredientID kernel.UUID
	branchID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetIngredientAvailabilityQuery(ingredientID, branchID kernel.UUID) (GetIngredientAvailabilityQuery, error) {
	var errList []error
	if err := ingredientID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("ingredientID", err))
	}
	if err := branchID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("branchID", err))
	}
	if err := errors.Join(errList...); err != nil {
		return GetIngredientAvailabilityQuery{}, err
	}

	return GetIngredientAvailabilityQuery{
		ingredientID: ingredientID,
		branchID:     branchID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetIngredientAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetIngredientAvailabilityQueryIsNotConstructed)
}

func (q GetIngredientAvailabilityQuery) IngredientID() kernel.UUID {
	return q.ingredientID
}

func (q GetIngredientAvailabilityQuery) BranchID() kernel.UUID {
	return q.branchID
}

// GetIngredientAvailabilityQueryResponse carries the effective value together
// with the inputs it was derived from.
type GetIngredientAvailabilityQueryResponse struct {
	IngredientID  kernel.UUID
	BranchID      kernel.UUID
	Name          string
	Available     bool
	Override      *bool
	Expired       bool
	BranchExpired bool
}
