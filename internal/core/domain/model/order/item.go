package order

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const MaxItemQty = 999

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line. PriceCents is the dish price at the moment the order
// was created.
type Item struct {
	dishID     kernel.UUID
	qty        int
	priceCents int64
	guard      guard.ConstructorGuard
}

func NewItem(dishID kernel.UUID, qty int, priceCents int64) (Item, error) {
	var errList []error
	if err := dishID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if qty < 1 || qty > MaxItemQty {
		errList = append(errList, errs.NewValueIsOutOfRangeError("qty", qty, 1, MaxItemQty))
	}
	if priceCents < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("priceCents", priceCents, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{dishID: dishID, qty: qty, priceCents: priceCents, guard: guard.NewConstructorGuard()}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) DishID() kernel.UUID {
	return i.dishID
}

func (i Item) Qty() int {
	return i.qty
}

func (i Item) PriceCents() int64 {
	return i.priceCents
}

// SubtotalCents is priceCents × qty.
func (i Item) SubtotalCents() int64 {
	return i.priceCents * int64(i.qty)
}
