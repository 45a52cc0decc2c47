package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrSetIngredientExpiredCommandIsNotConstructed = errors.New(
	"SetIngredientExpiredCommand must be created via NewSetIngredientExpiredCommand constructor",
)

// SetIngredientExpiredCommand toggles an expiration flag. With a branch it
// targets that branch only; without one it toggles the global flag.
type SetIngredientExpiredCommand struct { //nolint:recvcheck //using for validation
	ingredientID kernel.UUID
	branchID     *kernel.UUID
	expired      bool
	principal    *access.Principal

	guard guard.ConstructorGuard
}

func NewSetIngredientExpiredCommand(
	ingredientID kernel.UUID,
	branchID *kernel.UUID,
	expired bool,
	principal *access.Principal,
) (SetIngredientExpiredCommand, error) {
	if err := ingredientID.Validate(); err != nil {
		return SetIngredientExpiredCommand{}, errs.NewValueIsRequiredErrorWithCause("ingredientID", err)
	}

	var branch *kernel.UUID
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return SetIngredientExpiredCommand{}, errs.NewValueIsInvalidErrorWithCause("branchID", err)
		}
		branch = branchID.Ptr()
	}

	return SetIngredientExpiredCommand{
		ingredientID: ingredientID,
		branchID:     branch,
		expired:      expired,
		principal:    principal,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SetIngredientExpiredCommand) Validate() error {
	return c.guard.Validate(ErrSetIngredientExpiredCommandIsNotConstructed)
}

func (c SetIngredientExpiredCommand) IngredientID() kernel.UUID {
	return c.ingredientID
}

// BranchID is nil for the global flag.
func (c SetIngredientExpiredCommand) BranchID() *kernel.UUID {
	if c.branchID == nil {
		return nil
	}
	return c.branchID.Ptr()
}

func (c SetIngredientExpiredCommand) Expired() bool {
	return c.expired
}

func (c SetIngredientExpiredCommand) Principal() *access.Principal {
	return c.principal
}
