package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/availability"
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// MaxOrderNumberAttempts bounds order-number regeneration after collisions.
const MaxOrderNumberAttempts = 5

var ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")

// NumberGenerator proposes candidate order numbers.
type NumberGenerator func() order.Number

// CreateOrderCommandHandler places orders.
//
// Each attempt runs in its own transaction: branch check, dish resolution,
// availability, snapshot pricing, number pre-check and insert. An order-number
// collision, whether seen by the pre-check or by the unique index at insert,
// rolls the attempt back and starts a new one with a fresh number.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	emitter    ports.EventEmitter
	numbers    NumberGenerator
	guard      services.AccessGuard
	logger     *slog.Logger
	now        func() time.Time
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	emitter ports.EventEmitter,
	numbers NumberGenerator,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if numbers == nil {
		numbers = order.NewRandomNumber
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		numbers:    numbers,
		guard:      services.NewAccessGuard(),
		logger:     logger.With("component", "create_order_handler"),
		now:        time.Now,
	}
}

// Handle returns the persisted order. The new-order event is emitted only
// after the commit succeeded.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CreateOrder")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("branch.id", cmd.BranchID().String()))

	branchID := cmd.BranchID()
	if err = h.guard.Authorize(cmd.Principal(), &branchID, access.CreateOrder); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= MaxOrderNumberAttempts; attempt++ {
		o, tryErr := h.tryCreate(ctx, cmd)
		if tryErr == nil {
			span.SetAttributes(attribute.Int("order.number", o.Number().Value()), attribute.Int("attempts", attempt))
			h.emitter.Emit(ctx, event.NewOrderCreated(o))
			return o, nil
		}
		if !isOrderNumberConflict(tryErr) {
			return nil, tryErr
		}
		h.logger.WarnContext(ctx, "Order number collision, retrying",
			"attempt", attempt, "branch_id", branchID.String(), "error", tryErr)
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrOrderNumberExhausted, MaxOrderNumberAttempts)
}

func (h *CreateOrderCommandHandler) tryCreate(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.BranchRepository().Get(ctx, cmd.BranchID()); err != nil {
		return nil, err
	}

	items, err := h.snapshotItems(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	number := h.numbers()
	exists, err := orderRepo.ExistsNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("orderNumber", number.Value())
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.BranchID(),
		cmd.CustomerName(), cmd.CustomerPhone(), items, h.now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// snapshotItems checks every dish and captures its current price.
func (h *CreateOrderCommandHandler) snapshotItems(
	ctx context.Context,
	uow UoW,
	cmd CreateOrderCommand,
) ([]order.Item, error) {
	dishes, err := uow.MenuRepository().GetDishes(ctx, cmd.DishIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*menu.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID()] = d
	}

	reader := availability.NewReader(uow.IngredientRepository(), uow.AvailabilityRepository())
	branchID := cmd.BranchID()

	var violations []error
	for _, dishID := range cmd.DishIDs() {
		dish, ok := byID[dishID]
		switch {
		case !ok:
			violations = append(violations, errs.NewBusinessRuleViolationError(
				fmt.Sprintf("dish %s does not exist", dishID)))
		case !dish.BelongsTo(branchID):
			violations = append(violations, errs.NewBusinessRuleViolationError(
				fmt.Sprintf("dish %s is not on a menu of branch %s", dishID, branchID)))
		default:
			available, err := reader.Dish(ctx, dish, branchID)
			if err != nil {
				return nil, err
			}
			if !available {
				violations = append(violations, errs.NewBusinessRuleViolationError(
					fmt.Sprintf("dish %s is unavailable at branch %s", dishID, branchID)))
			}
		}
	}
	if err := errors.Join(violations...); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, req := range cmd.Items() {
		it, err := order.NewItem(req.DishID, req.Qty, byID[req.DishID].PriceCents())
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, nil
}

func isOrderNumberConflict(err error) bool {
	var conflict *errs.ConflictError
	return errors.As(err, &conflict) && conflict.ParamName == "orderNumber"
}
