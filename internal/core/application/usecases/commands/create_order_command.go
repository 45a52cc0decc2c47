package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemRequest is one requested line: a dish and a quantity.
type OrderItemRequest struct {
	DishID kernel.UUID
	Qty    int
}

// CreateOrderCommand represents a request to place an order at a branch.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(branchID, "Alice", "+15550100",
//	    []OrderItemRequest{{DishID: pizzaID, Qty: 2}}, principal)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	branchID      kernel.UUID
	customerName  string
	customerPhone string
	items         []OrderItemRequest
	principal     *access.Principal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the request. Whether the
// dishes exist and are orderable is decided by the handler.
func NewCreateOrderCommand(
	branchID kernel.UUID,
	customerName, customerPhone string,
	items []OrderItemRequest,
	principal *access.Principal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBranchID(branchID),
		cmd.setCustomer(customerName, customerPhone),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

func (c CreateOrderCommand) Items() []OrderItemRequest {
	res := make([]OrderItemRequest, len(c.items))
	copy(res, c.items)
	return res
}

func (c CreateOrderCommand) Principal() *access.Principal {
	return c.principal
}

// DishIDs returns the distinct dish IDs in request order.
func (c CreateOrderCommand) DishIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.items))
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, it := range c.items {
		if _, ok := seen[it.DishID]; ok {
			continue
		}
		seen[it.DishID] = struct{}{}
		ids = append(ids, it.DishID)
	}
	return ids
}

func (c *CreateOrderCommand) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}
	c.branchID = id
	return nil
}

func (c *CreateOrderCommand) setCustomer(name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	var errList []error
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customerName"))
	}
	if phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customerPhone"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.customerName = name
	c.customerPhone = phone
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var errList []error
	for _, it := range items {
		if err := it.DishID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("dishId", err))
		}
		if it.Qty < 1 || it.Qty > order.MaxItemQty {
			errList = append(errList, errs.NewValueIsOutOfRangeError("qty", it.Qty, 1, order.MaxItemQty))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = make([]OrderItemRequest, len(items))
	copy(c.items, items)
	return nil
}
