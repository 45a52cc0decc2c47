// Package branch holds the Branch aggregate: a physical restaurant location
// that owns menus, staff and orders.
package branch

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

const (
	MaxNameLength    = 255
	MaxAddressLength = 512
)

// Branch is unique by address in the store.
type Branch struct {
	id            kernel.UUID
	name          string
	address       string
	coordinates   kernel.Coordinates
	isConstructed bool
}

func NewBranch(id kernel.UUID, name, address string, coordinates kernel.Coordinates) (*Branch, error) {
	b := &Branch{isConstructed: true}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setAddress(address),
		b.setCoordinates(coordinates),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Branch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBranchIsNotConstructed
	}
	return nil
}

func (b *Branch) ID() kernel.UUID {
	return b.id
}

func (b *Branch) Name() string {
	return b.name
}

func (b *Branch) Address() string {
	return b.address
}

func (b *Branch) Coordinates() kernel.Coordinates {
	return b.coordinates
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, MaxNameLength)
	}
	b.name = name
	return nil
}

func (b *Branch) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(address) > MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", len(address), 1, MaxAddressLength)
	}
	b.address = address
	return nil
}

func (b *Branch) setCoordinates(c kernel.Coordinates) error {
	if err := c.Validate(); err != nil {
		return err
	}
	b.coordinates = c
	return nil
}
