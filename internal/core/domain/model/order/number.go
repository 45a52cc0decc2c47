package order

import (
	"errors"
	"math/rand/v2"
	"strconv"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	MinNumber = 100000
	MaxNumber = 999999
)

var ErrNumberIsNotConstructed = errors.New("Number must be created via NewNumber constructor")

// Number is the customer-facing 6-digit order number, unique across all orders.
type Number struct {
	value int
	guard guard.ConstructorGuard
}

func NewNumber(value int) (Number, error) {
	if value < MinNumber || value > MaxNumber {
		return Number{}, errs.NewValueIsOutOfRangeError("orderNumber", value, MinNumber, MaxNumber)
	}
	return Number{value: value, guard: guard.NewConstructorGuard()}, nil
}

// NewRandomNumber draws uniformly from [MinNumber, MaxNumber]. Uniqueness is
// enforced by the store, not here.
func NewRandomNumber() Number {
	v := rand.IntN(MaxNumber-MinNumber+1) + MinNumber //nolint:gosec // not a secret
	return Number{value: v, guard: guard.NewConstructorGuard()}
}

func (n Number) Validate() error {
	return n.guard.Validate(ErrNumberIsNotConstructed)
}

func (n Number) Value() int {
	return n.value
}

func (n Number) String() string {
	return strconv.Itoa(n.value)
}
