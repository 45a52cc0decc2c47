package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
)

type SetDishAvailabilityCommandHandler struct {
	uowFactory MenuUoWFactory
	guard      services.AccessGuard
}

func NewSetDishAvailabilityCommandHandler(uowFactory MenuUoWFactory) SetDishAvailabilityCommandHandler {
	return SetDishAvailabilityCommandHandler{
		uowFactory: uowFactory,
		guard:      services.NewAccessGuard(),
	}
}

func (h *SetDishAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd SetDishAvailabilityCommand,
) (_ *menu.Dish, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "SetDishAvailability")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(
		attribute.String("dish.id", cmd.DishID().String()),
		attribute.Bool("available", cmd.Available()),
	)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.MenuRepository()
	dish, err := repo.GetDish(ctx, cmd.DishID())
	if err != nil {
		return nil, err
	}

	branchID := dish.BranchID()
	if err = h.guard.Authorize(cmd.Principal(), &branchID, access.SetDishAvailability); err != nil {
		return nil, err
	}

	if !dish.SetAvailable(cmd.Available()) {
		return dish, nil
	}

	if err = repo.UpdateDish(ctx, dish); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return dish, nil
}
