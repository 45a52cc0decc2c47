package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetBranchMenuQueryIsNotConstructed = errors.New(
	"GetBranchMenuQuery must be created via NewGetBranchMenuQuery constructor",
)

// GetBranchMenuQuery lists the dishes of every menu of a branch with their
// effective availability. It is customer facing and needs no principal.
type GetBranchMenuQuery struct {
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBranchMenuQuery(branchID kernel.UUID) (GetBranchMenuQuery, error) {
	if err := branchID.Validate(); err != nil {
		return GetBranchMenuQuery{}, errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}
	return GetBranchMenuQuery{branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBranchMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchMenuQueryIsNotConstructed)
}

func (q GetBranchMenuQuery) BranchID() kernel.UUID {
	return q.branchID
}

type GetBranchMenuQueryResponse struct {
	BranchID   kernel.UUID
	BranchName string
	Dishes     []MenuDishResponse
}

type MenuDishResponse struct {
	ID         kernel.UUID
	MenuID     kernel.UUID
	Name       string
	PriceCents int64
	Available  bool
}
