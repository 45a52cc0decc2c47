package order

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrOrderAlreadyCanceled           = errors.New("order is already canceled")
	ErrCompletedOrderCannotBeCanceled = errors.New("cannot cancel completed order")
)

const (
	MaxCustomerNameLength  = 255
	MaxCustomerPhoneLength = 32
	MaxCancelReasonLength  = 1024
)

// Order is the aggregate root of the order lifecycle.
//
// Branch, customer, number, items and total are fixed at creation. Only the
// status, the cancel flag, the cancel reason and updatedAt change afterwards,
// and only through TransitionTo or Cancel.
type Order struct {
	id            kernel.UUID
	number        Number
	branchID      kernel.UUID
	customerName  string
	customerPhone string
	items         []Item
	totalCents    int64
	status        Status
	canceled      bool
	cancelReason  string
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewOrder creates a PENDING order and computes its total from the item snapshots.
//
// Example:
//
//	item, _ := order.NewItem(dish.ID(), 2, dish.PriceCents())
//	o, err := order.NewOrder(kernel.NewUUID(), order.NewRandomNumber(), branchID,
//	    "Alice", "+15550100", []order.Item{item}, time.Now())
func NewOrder(
	id kernel.UUID,
	number Number,
	branchID kernel.UUID,
	customerName, customerPhone string,
	items []Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setBranchID(branchID),
		o.setCustomer(customerName, customerPhone),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The stored total is kept
// as is; it is not recomputed from the items.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	branchID kernel.UUID,
	customerName, customerPhone string,
	items []Item,
	totalCents int64,
	status Status,
	cancelReason string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, branchID, customerName, customerPhone, items, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.totalCents = totalCents
	o.status = status
	o.canceled = status == Canceled
	o.cancelReason = cancelReason
	o.updatedAt = updatedAt.UTC()

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

func (o *Order) Items() []Item {
	res := make([]Item, len(o.items))
	copy(res, o.items)
	return res
}

func (o *Order) TotalCents() int64 {
	return o.totalCents
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsCanceled() bool {
	return o.canceled
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order along one edge of the status graph.
//
// Moving to CANCELED requires a non-empty reason; for any other target the
// reason is ignored.
func (o *Order) TransitionTo(next Status, reason string, now time.Time) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}

	if next == Canceled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return errs.NewValueIsRequiredError("cancelReason")
		}
		if len(reason) > MaxCancelReasonLength {
			return errs.NewValueIsOutOfRangeError("cancelReason length", len(reason), 1, MaxCancelReasonLength)
		}
		o.canceled = true
		o.cancelReason = reason
	}

	o.status = next
	o.updatedAt = now.UTC()
	return nil
}

// Cancel is TransitionTo(Canceled) with distinct errors for orders that are
// already canceled or completed. Both errors also match errs.ErrInvalidTransition.
func (o *Order) Cancel(reason string, now time.Time) error {
	switch {
	case o.canceled || o.status == Canceled:
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), Canceled.String(), ErrOrderAlreadyCanceled)
	case o.status == Completed:
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), Canceled.String(), ErrCompletedOrderCannotBeCanceled)
	}

	return o.TransitionTo(Canceled, reason, now)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(n Number) error {
	if err := n.Validate(); err != nil {
		return err
	}
	o.number = n
	return nil
}

func (o *Order) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.branchID = id
	return nil
}

func (o *Order) setCustomer(name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	var errList []error
	switch {
	case name == "":
		errList = append(errList, errs.NewValueIsRequiredError("customerName"))
	case len(name) > MaxCustomerNameLength:
		errList = append(errList,
			errs.NewValueIsOutOfRangeError("customerName length", len(name), 1, MaxCustomerNameLength))
	}
	switch {
	case phone == "":
		errList = append(errList, errs.NewValueIsRequiredError("customerPhone"))
	case len(phone) > MaxCustomerPhoneLength:
		errList = append(errList,
			errs.NewValueIsOutOfRangeError("customerPhone length", len(phone), 1, MaxCustomerPhoneLength))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var total int64
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		total += it.SubtotalCents()
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalCents = total
	return nil
}
