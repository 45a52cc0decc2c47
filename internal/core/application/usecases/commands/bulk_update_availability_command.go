package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrBulkUpdateAvailabilityCommandIsNotConstructed = errors.New(
	"BulkUpdateAvailabilityCommand must be created via NewBulkUpdateAvailabilityCommand constructor",
)

// AvailabilityUpdate sets the branch override of one ingredient.
type AvailabilityUpdate struct {
	IngredientID kernel.UUID
	Available    bool
}

// BulkUpdateAvailabilityCommand applies several overrides at one branch in a
// single transaction. An ingredient may appear at most once per batch.
type BulkUpdateAvailabilityCommand struct { //nolint:recvcheck //using for validation
	branchID  kernel.UUID
	updates   []AvailabilityUpdate
	principal *access.Principal

	guard guard.ConstructorGuard
}

func NewBulkUpdateAvailabilityCommand(
	branchID kernel.UUID,
	updates []AvailabilityUpdate,
	principal *access.Principal,
) (BulkUpdateAvailabilityCommand, error) {
	if err := branchID.Validate(); err != nil {
		return BulkUpdateAvailabilityCommand{}, errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}
	if len(updates) == 0 {
		return BulkUpdateAvailabilityCommand{}, errs.NewValueIsRequiredError("updates")
	}

	seen := make(map[kernel.UUID]struct{}, len(updates))
	var errList []error
	for _, u := range updates {
		if err := u.IngredientID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("ingredientId", err))
			continue
		}
		if _, dup := seen[u.IngredientID]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("updates",
				errors.New("duplicate ingredient "+u.IngredientID.String())))
		}
		seen[u.IngredientID] = struct{}{}
	}
	if err := errors.Join(errList...); err != nil {
		return BulkUpdateAvailabilityCommand{}, err
	}

	cp := make([]AvailabilityUpdate, len(updates))
	copy(cp, updates)

	return BulkUpdateAvailabilityCommand{
		branchID:  branchID,
		updates:   cp,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c BulkUpdateAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateAvailabilityCommandIsNotConstructed)
}

func (c BulkUpdateAvailabilityCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c BulkUpdateAvailabilityCommand) Updates() []AvailabilityUpdate {
	res := make([]AvailabilityUpdate, len(c.updates))
	copy(res, c.updates)
	return res
}

func (c BulkUpdateAvailabilityCommand) IngredientIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.updates))
	for _, u := range c.updates {
		ids = append(ids, u.IngredientID)
	}
	return ids
}

func (c BulkUpdateAvailabilityCommand) Principal() *access.Principal {
	return c.principal
}
