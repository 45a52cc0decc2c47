package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// changeOrderStatus loads the order, authorizes against its branch, applies
// mutate and persists with a compare-and-swap on the previous status.
func changeOrderStatus(
	ctx context.Context,
	factory OrderUoWFactory,
	orderID kernel.UUID,
	principal *access.Principal,
	action access.Action,
	mutate func(o *order.Order) error,
) (*order.Order, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	branchID := o.BranchID()
	if err = services.NewAccessGuard().Authorize(principal, &branchID, action); err != nil {
		return nil, err
	}

	expected := o.Status()
	if err = mutate(o); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
