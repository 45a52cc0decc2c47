package ingredient

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrBranchAvailabilityIsNotConstructed = errors.New(
	"BranchAvailability must be created via NewBranchAvailability constructor")

// BranchAvailability is the override record keyed by (branchID, ingredientID).
// It is created on first write and updated in place afterwards.
type BranchAvailability struct {
	branchID      kernel.UUID
	ingredientID  kernel.UUID
	available     bool
	updatedAt     time.Time
	updatedBy     string
	isConstructed bool
}

func NewBranchAvailability(
	branchID, ingredientID kernel.UUID,
	available bool,
	updatedBy string,
	updatedAt time.Time,
) (*BranchAvailability, error) {
	a := &BranchAvailability{available: available, isConstructed: true}

	if err := errors.Join(
		a.setBranchID(branchID),
		a.setIngredientID(ingredientID),
		a.setAudit(updatedBy, updatedAt),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *BranchAvailability) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrBranchAvailabilityIsNotConstructed
	}
	return nil
}

func (a *BranchAvailability) BranchID() kernel.UUID {
	return a.branchID
}

func (a *BranchAvailability) IngredientID() kernel.UUID {
	return a.ingredientID
}

func (a *BranchAvailability) IsAvailable() bool {
	return a.available
}

func (a *BranchAvailability) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *BranchAvailability) UpdatedBy() string {
	return a.updatedBy
}

// Set overwrites the flag and the audit fields.
func (a *BranchAvailability) Set(available bool, updatedBy string, updatedAt time.Time) error {
	if err := a.setAudit(updatedBy, updatedAt); err != nil {
		return err
	}
	a.available = available
	return nil
}

func (a *BranchAvailability) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.branchID = id
	return nil
}

func (a *BranchAvailability) setIngredientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.ingredientID = id
	return nil
}

func (a *BranchAvailability) setAudit(updatedBy string, updatedAt time.Time) error {
	updatedBy = strings.TrimSpace(updatedBy)
	if updatedBy == "" {
		return errs.NewValueIsRequiredError("updatedBy")
	}
	if updatedAt.IsZero() {
		return errs.NewValueIsRequiredError("updatedAt")
	}
	a.updatedBy = updatedBy
	a.updatedAt = updatedAt.UTC()
	return nil
}
