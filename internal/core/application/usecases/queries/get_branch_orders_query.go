package queries

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	DefaultOrdersLimit = 50
	MaxOrdersLimit     = 500
)

var ErrGetBranchOrdersQueryIsNotConstructed = errors.New(
	"GetBranchOrdersQuery must be created via NewGetBranchOrdersQuery constructor",
)

// OrderFilter scopes an order listing. Zero values mean "no constraint",
// except BranchID which is mandatory and Limit which defaults to
// DefaultOrdersLimit.
type OrderFilter struct {
	BranchID    kernel.UUID
	Statuses    []order.Status
	Canceled    *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// GetBranchOrdersQuery lists orders of one branch, newest first.
//
// Example:
//
//	canceled := false
//	query, err := NewGetBranchOrdersQuery(OrderFilter{
//	    BranchID: branchID,
//	    Statuses: []order.Status{order.Pending, order.Accepted},
//	    Canceled: &canceled,
//	}, principal)
type GetBranchOrdersQuery struct {
	filter    OrderFilter
	principal *access.Principal

	guard guard.ConstructorGuard
}

func NewGetBranchOrdersQuery(filter OrderFilter, principal *access.Principal) (GetBranchOrdersQuery, error) {
	var errList []error
	if err := filter.BranchID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("branchID", err))
	}
	for _, s := range filter.Statuses {
		if err := s.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("createdFrom",
			errors.New("createdFrom is after createdTo")))
	}
	if filter.Limit < 0 || filter.Limit > MaxOrdersLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, MaxOrdersLimit))
	}
	if filter.Offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", filter.Offset, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetBranchOrdersQuery{}, err
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultOrdersLimit
	}
	filter.Statuses = append([]order.Status(nil), filter.Statuses...)

	return GetBranchOrdersQuery{
		filter:    filter,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetBranchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchOrdersQueryIsNotConstructed)
}

func (q GetBranchOrdersQuery) Filter() OrderFilter {
	f := q.filter
	f.Statuses = append([]order.Status(nil), q.filter.Statuses...)
	return f
}

func (q GetBranchOrdersQuery) Principal() *access.Principal {
	return q.principal
}

type GetBranchOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        int
	BranchID      kernel.UUID
	CustomerName  string
	CustomerPhone string
	Status        order.Status
	Canceled      bool
	CancelReason  string
	TotalCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItemResponse
}

type OrderItemResponse struct {
	DishID     kernel.UUID
	Qty        int
	PriceCents int64
}
