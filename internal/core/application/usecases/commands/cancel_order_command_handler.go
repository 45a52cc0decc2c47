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

// CancelOrderCommandHandler cancels an order from any non-terminal status.
// Canceling twice yields order.ErrOrderAlreadyCanceled, canceling a completed
// order yields order.ErrCompletedOrderCannotBeCanceled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    ports.EventEmitter
	now        func() time.Time
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, emitter ports.EventEmitter) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		now:        time.Now,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CancelOrder")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))

	o, err := changeOrderStatus(ctx, h.uowFactory, cmd.OrderID(), cmd.Principal(), access.CancelOrder,
		func(o *order.Order) error {
			return o.Cancel(cmd.Reason(), h.now())
		})
	if err != nil {
		return nil, err
	}

	h.emitter.Emit(ctx, event.NewOrderStatusUpdated(o))
	return o, nil
}
