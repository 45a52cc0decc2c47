package ingredient

import (
	"errors"
	"sort"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrIngredientIsNotConstructed = errors.New("Ingredient must be created via NewIngredient constructor")

const MaxNameLength = 255

// Ingredient is unique by name. Its expired flags are independent of any
// BranchAvailability override.
type Ingredient struct {
	id            kernel.UUID
	name          string
	expired       bool
	branchExpired map[kernel.UUID]struct{}
	isConstructed bool
}

func NewIngredient(id kernel.UUID, name string) (*Ingredient, error) {
	i := &Ingredient{
		branchExpired: make(map[kernel.UUID]struct{}),
		isConstructed: true,
	}

	if err := errors.Join(i.setID(id), i.setName(name)); err != nil {
		return nil, err
	}

	return i, nil
}

// RestoreIngredient rebuilds an Ingredient from persistence.
func RestoreIngredient(id kernel.UUID, name string, expired bool, expiredAt []kernel.UUID) (*Ingredient, error) {
	i, err := NewIngredient(id, name)
	if err != nil {
		return nil, err
	}

	i.expired = expired
	for _, branchID := range expiredAt {
		if err := branchID.Validate(); err != nil {
			return nil, err
		}
		i.branchExpired[branchID] = struct{}{}
	}

	return i, nil
}

func (i *Ingredient) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIngredientIsNotConstructed
	}
	return nil
}

func (i *Ingredient) ID() kernel.UUID {
	return i.id
}

func (i *Ingredient) Name() string {
	return i.name
}

// IsExpired reports the global expired flag.
func (i *Ingredient) IsExpired() bool {
	return i.expired
}

// IsBranchExpired reports the per-branch expired flag only.
func (i *Ingredient) IsBranchExpired(branchID kernel.UUID) bool {
	_, ok := i.branchExpired[branchID]
	return ok
}

// IsExpiredAt is true when either the global or the branch flag is set.
func (i *Ingredient) IsExpiredAt(branchID kernel.UUID) bool {
	return i.expired || i.IsBranchExpired(branchID)
}

// ExpiredBranches lists branches with the per-branch flag set, sorted by ID.
func (i *Ingredient) ExpiredBranches() []kernel.UUID {
	res := make([]kernel.UUID, 0, len(i.branchExpired))
	for id := range i.branchExpired {
		res = append(res, id)
	}
	sort.Slice(res, func(a, b int) bool { return res[a].String() < res[b].String() })
	return res
}

// SetExpired toggles the global flag. It reports whether the flag changed.
func (i *Ingredient) SetExpired(expired bool) bool {
	changed := i.expired != expired
	i.expired = expired
	return changed
}

// SetBranchExpired toggles the flag for one branch. It reports whether the flag changed.
func (i *Ingredient) SetBranchExpired(branchID kernel.UUID, expired bool) (bool, error) {
	if err := branchID.Validate(); err != nil {
		return false, err
	}

	was := i.IsBranchExpired(branchID)
	if expired {
		i.branchExpired[branchID] = struct{}{}
	} else {
		delete(i.branchExpired, branchID)
	}
	return was != expired, nil
}

func (i *Ingredient) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Ingredient) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, MaxNameLength)
	}
	i.name = name
	return nil
}
