package order

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──> ACCEPTED ──> PREPARING ──> READY ──┬──> OUT_FOR_DELIVERY ──> COMPLETED
//	   │           │             │           │     └───────────────────────> COMPLETED
//	   └───────────┴─────────────┴───────────┴──────────────┴──────────────> CANCELED
//
// COMPLETED and CANCELED have no outgoing edges.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Accepted
	Preparing
	Ready
	OutForDelivery
	Completed
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Accepted:       "ACCEPTED",
		Preparing:      "PREPARING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Completed:      "COMPLETED",
		Canceled:       "CANCELED",
	}
}

// getTransitions returns the allowed-next-set of every status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no edges
	return map[Status][]Status{
		Pending:        {Accepted, Canceled},
		Accepted:       {Preparing, Canceled},
		Preparing:      {Ready, Canceled},
		Ready:          {OutForDelivery, Completed, Canceled},
		OutForDelivery: {Completed, Canceled},
		Completed:      {},
		Canceled:       {},
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus maps the upper-case wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// NextStatuses returns a copy of the allowed-next-set.
func (s Status) NextStatuses() []Status {
	next := getTransitions()[s]
	res := make([]Status, len(next))
	copy(res, next)
	return res
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal is true for COMPLETED and CANCELED.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// ValidateTransition returns an InvalidTransitionError for edges outside the graph.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return nil
}
