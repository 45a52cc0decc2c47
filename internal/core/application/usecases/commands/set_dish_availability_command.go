package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrSetDishAvailabilityCommandIsNotConstructed = errors.New(
	"SetDishAvailabilityCommand must be created via NewSetDishAvailabilityCommand constructor",
)

// SetDishAvailabilityCommand flips the dish kill-switch.
type SetDishAvailabilityCommand struct { //nolint:recvcheck //using for validation
	dishID    kernel.UUID
	available bool
	principal *access.Principal

	guard guard.ConstructorGuard
}

func NewSetDishAvailabilityCommand(
	dishID kernel.UUID,
	available bool,
	principal *access.Principal,
) (SetDishAvailabilityCommand, error) {
	if err := dishID.Validate(); err != nil {
		return SetDishAvailabilityCommand{}, errs.NewValueIsRequiredErrorWithCause("dishID", err)
	}
	return SetDishAvailabilityCommand{
		dishID:    dishID,
		available: available,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDishAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDishAvailabilityCommandIsNotConstructed)
}

func (c SetDishAvailabilityCommand) DishID() kernel.UUID {
	return c.dishID
}

func (c SetDishAvailabilityCommand) Available() bool {
	return c.available
}

func (c SetDishAvailabilityCommand) Principal() *access.Principal {
	return c.principal
}
