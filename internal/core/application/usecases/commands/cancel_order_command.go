package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reason    string
	principal *access.Principal

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, reason string, principal *access.Principal) (CancelOrderCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderID", err))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		errList = append(errList, errs.NewValueIsRequiredError("cancelReason"))
	}
	if err := errors.Join(errList...); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:   orderID,
		reason:    reason,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c CancelOrderCommand) Principal() *access.Principal {
	return c.principal
}
