package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    ports.EventEmitter
	now        func() time.Time
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	emitter ports.EventEmitter,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		now:        time.Now,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "UpdateOrderStatus")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.status", cmd.Status().String()),
	)

	o, err := changeOrderStatus(ctx, h.uowFactory, cmd.OrderID(), cmd.Principal(), access.UpdateOrderStatus,
		func(o *order.Order) error {
			return o.TransitionTo(cmd.Status(), cmd.Reason(), h.now())
		})
	if err != nil {
		return nil, err
	}

	h.emitter.Emit(ctx, event.NewOrderStatusUpdated(o))
	return o, nil
}
