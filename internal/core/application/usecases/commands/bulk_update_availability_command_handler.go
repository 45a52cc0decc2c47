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

// BulkUpdateAvailabilityCommandHandler validates the branch and every
// ingredient before the first write, so a batch is applied entirely or not
// at all. After commit it emits one ingredient-availability-update per entry
// carrying the effective availability, which also reflects expiration.
type BulkUpdateAvailabilityCommandHandler struct {
	uowFactory AvailabilityUoWFactory
	emitter    ports.EventEmitter
	guard      services.AccessGuard
	resolver   services.AvailabilityResolver
	now        func() time.Time
}

func NewBulkUpdateAvailabilityCommandHandler(
	uowFactory AvailabilityUoWFactory,
	emitter ports.EventEmitter,
) BulkUpdateAvailabilityCommandHandler {
	return BulkUpdateAvailabilityCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		guard:      services.NewAccessGuard(),
		resolver:   services.NewAvailabilityResolver(),
		now:        time.Now,
	}
}

// Handle returns the number of applied updates.
func (h *BulkUpdateAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd BulkUpdateAvailabilityCommand,
) (_ int, err error) {
	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, span := tracer.Start(ctx, "BulkUpdateAvailability")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(
		attribute.String("branch.id", cmd.BranchID().String()),
		attribute.Int("updates", len(cmd.Updates())),
	)

	branchID := cmd.BranchID()
	if err = h.guard.Authorize(cmd.Principal(), &branchID, access.UpdateAvailability); err != nil {
		return 0, err
	}

	events, err := h.apply(ctx, cmd)
	if err != nil {
		return 0, err
	}

	for _, e := range events {
		h.emitter.Emit(ctx, e)
	}
	return len(events), nil
}

func (h *BulkUpdateAvailabilityCommandHandler) apply(
	ctx context.Context,
	cmd BulkUpdateAvailabilityCommand,
) ([]event.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	branchID := cmd.BranchID()
	if _, err := uow.BranchRepository().Get(ctx, branchID); err != nil {
		return nil, err
	}

	ingredients, err := uow.IngredientRepository().GetMany(ctx, cmd.IngredientIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*ingredient.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID()] = ing
	}
	var missing []error
	for _, id := range cmd.IngredientIDs() {
		if _, ok := byID[id]; !ok {
			missing = append(missing, errs.NewObjectNotFoundError("ingredientID", id))
		}
	}
	if err = errors.Join(missing...); err != nil {
		return nil, err
	}

	repo := uow.AvailabilityRepository()
	now := h.now()
	updatedBy := cmd.Principal().Subject()
	events := make([]event.Event, 0, len(cmd.Updates()))

	for _, u := range cmd.Updates() {
		record, err := h.nextRecord(ctx, repo, branchID, u, updatedBy, now)
		if err != nil {
			return nil, err
		}
		if err = repo.Upsert(ctx, record); err != nil {
			return nil, err
		}

		effective, err := h.resolver.ResolveIngredient(byID[u.IngredientID], record, branchID)
		if err != nil {
			return nil, err
		}
		events = append(events, event.NewIngredientAvailabilityUpdated(u.IngredientID, branchID, effective, now))
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return events, nil
}

func (h *BulkUpdateAvailabilityCommandHandler) nextRecord(
	ctx context.Context,
	repo ports.AvailabilityRepository,
	branchID kernel.UUID,
	u AvailabilityUpdate,
	updatedBy string,
	now time.Time,
) (*ingredient.BranchAvailability, error) {
	record, err := repo.Get(ctx, branchID, u.IngredientID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ingredient.NewBranchAvailability(branchID, u.IngredientID, u.Available, updatedBy, now)
	case err != nil:
		return nil, err
	}

	if err = record.Set(u.Available, updatedBy, now); err != nil {
		return nil, err
	}
	return record, nil
}
