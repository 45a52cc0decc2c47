package menu

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")

const MaxPriceCents int64 = 100_000_000

type Dish struct {
	id            kernel.UUID
	menuID        kernel.UUID
	branchID      kernel.UUID
	name          string
	priceCents    int64
	available     bool
	links         []IngredientLink
	isConstructed bool
}

// NewDish creates an available dish on menu.
func NewDish(id kernel.UUID, menu *Menu, name string, priceCents int64, links []IngredientLink) (*Dish, error) {
	if err := menu.Validate(); err != nil {
		return nil, err
	}
	return RestoreDish(id, menu.ID(), menu.BranchID(), name, priceCents, true, links)
}

// RestoreDish rebuilds a Dish from persistence; branchID comes from the owning menu.
func RestoreDish(
	id, menuID, branchID kernel.UUID,
	name string,
	priceCents int64,
	available bool,
	links []IngredientLink,
) (*Dish, error) {
	d := &Dish{available: available, isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setMenu(menuID, branchID),
		d.setName(name),
		d.SetPrice(priceCents),
		d.setLinks(links),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Dish) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDishIsNotConstructed
	}
	return nil
}

func (d *Dish) ID() kernel.UUID {
	return d.id
}

func (d *Dish) MenuID() kernel.UUID {
	return d.menuID
}

func (d *Dish) BranchID() kernel.UUID {
	return d.branchID
}

func (d *Dish) Name() string {
	return d.name
}

func (d *Dish) PriceCents() int64 {
	return d.priceCents
}

// IsAvailable reports the kill-switch only, not the effective availability.
func (d *Dish) IsAvailable() bool {
	return d.available
}

func (d *Dish) Links() []IngredientLink {
	res := make([]IngredientLink, len(d.links))
	copy(res, d.links)
	return res
}

// RequiredIngredientIDs lists the ingredients that gate availability.
func (d *Dish) RequiredIngredientIDs() []kernel.UUID {
	var ids []kernel.UUID
	for _, l := range d.links {
		if l.IsRequired() {
			ids = append(ids, l.IngredientID())
		}
	}
	return ids
}

func (d *Dish) BelongsTo(branchID kernel.UUID) bool {
	return d.branchID.IsEqual(branchID)
}

// SetAvailable flips the kill-switch and reports whether it changed.
func (d *Dish) SetAvailable(available bool) bool {
	changed := d.available != available
	d.available = available
	return changed
}

// SetPrice changes the current price. Orders already placed keep their snapshot.
func (d *Dish) SetPrice(priceCents int64) error {
	if priceCents < 0 || priceCents > MaxPriceCents {
		return errs.NewValueIsOutOfRangeError("priceCents", priceCents, 0, MaxPriceCents)
	}
	d.priceCents = priceCents
	return nil
}

func (d *Dish) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dish) setMenu(menuID, branchID kernel.UUID) error {
	if err := errors.Join(menuID.Validate(), branchID.Validate()); err != nil {
		return err
	}
	d.menuID = menuID
	d.branchID = branchID
	return nil
}

func (d *Dish) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Dish) setLinks(links []IngredientLink) error {
	seen := make(map[kernel.UUID]struct{}, len(links))
	res := make([]IngredientLink, 0, len(links))
	for _, l := range links {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, ok := seen[l.IngredientID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("links",
				fmt.Errorf("ingredient %s is linked more than once", l.IngredientID()))
		}
		seen[l.IngredientID()] = struct{}{}
		res = append(res, l)
	}
	d.links = res
	return nil
}
