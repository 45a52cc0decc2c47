// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"restaurant/internal/core/domain/model/branch"
	"restaurant/internal/core/domain/model/kernel"
)

// BranchRepository persists Branch aggregates. Address is unique; a duplicate
// yields errs.ConflictError.
type BranchRepository interface {
	Add(ctx context.Context, aggregate *branch.Branch) error

	// Get returns errs.ObjectNotFoundError when the branch does not exist.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// List returns every branch ordered by name.
	List(ctx context.Context) ([]*branch.Branch, error)
}
