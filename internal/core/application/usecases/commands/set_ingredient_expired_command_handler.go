package commands

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/ingredient"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// SetIngredientExpiredCommandHandler toggles expiration and notifies every
// affected branch with the resulting effective availability. A branch flag
// needs SetBranchExpiration on that branch; the global flag is ADMIN only and
// fans out one event per branch.
type SetIngredientExpiredCommandHandler struct {
	uowFactory AvailabilityUoWFactory
	emitter    ports.EventEmitter
	guard      services.AccessGuard
	resolver   services.AvailabilityResolver
	now        func() time.Time
}

func NewSetIngredientExpiredCommandHandler(
	uowFactory AvailabilityUoWFactory,
	emitter ports.EventEmitter,
) SetIngredientExpiredCommandHandler {
	return SetIngredientExpiredCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		guard:      services.NewAccessGuard(),
		resolver:   services.NewAvailabilityResolver(),
		now:        time.Now,
	}
}

func (h *SetIngredientExpiredCommandHandler) Handle(ctx context.Context, cmd SetIngredientExpiredCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "SetIngredientExpired")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(
		attribute.String("ingredient.id", cmd.IngredientID().String()),
		attribute.Bool("expired", cmd.Expired()),
	)

	if branchID := cmd.BranchID(); branchID != nil {
		span.SetAttributes(attribute.String("branch.id", branchID.String()))
		err = h.guard.Authorize(cmd.Principal(), branchID, access.SetBranchExpiration)
	} else {
		err = h.guard.Authorize(cmd.Principal(), nil, access.ManageCatalog)
	}
	if err != nil {
		return err
	}

	events, err := h.apply(ctx, cmd)
	if err != nil {
		return err
	}

	for _, e := range events {
		h.emitter.Emit(ctx, e)
	}
	return nil
}

func (h *SetIngredientExpiredCommandHandler) apply(
	ctx context.Context,
	cmd SetIngredientExpiredCommand,
) ([]event.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.IngredientRepository()
	ing, err := repo.GetForUpdate(ctx, cmd.IngredientID())
	if err != nil {
		return nil, err
	}

	var affected []kernel.UUID
	if branchID := cmd.BranchID(); branchID != nil {
		if _, err = uow.BranchRepository().Get(ctx, *branchID); err != nil {
			return nil, err
		}
		if _, err = ing.SetBranchExpired(*branchID, cmd.Expired()); err != nil {
			return nil, err
		}
		if err = repo.SaveBranchExpired(ctx, ing, *branchID); err != nil {
			return nil, err
		}
		affected = []kernel.UUID{*branchID}
	} else {
		ing.SetExpired(cmd.Expired())
		if err = repo.SaveExpired(ctx, ing); err != nil {
			return nil, err
		}
		branches, err := uow.BranchRepository().List(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			affected = append(affected, b.ID())
		}
	}

	now := h.now()
	events := make([]event.Event, 0, len(affected))
	for _, branchID := range affected {
		effective, err := h.effective(ctx, uow.AvailabilityRepository(), ing, branchID)
		if err != nil {
			return nil, err
		}
		events = append(events, event.NewIngredientAvailabilityUpdated(ing.ID(), branchID, effective, now))
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return events, nil
}

func (h *SetIngredientExpiredCommandHandler) effective(
	ctx context.Context,
	repo ports.AvailabilityRepository,
	ing *ingredient.Ingredient,
	branchID kernel.UUID,
) (bool, error) {
	override, err := repo.Get(ctx, branchID, ing.ID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return false, err
		}
		override = nil
	}
	return h.resolver.ResolveIngredient(ing, override, branchID)
}
