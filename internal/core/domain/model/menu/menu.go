package menu

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrMenuIsNotConstructed = errors.New("Menu must be created via NewMenu constructor")

type Menu struct {
	id            kernel.UUID
	branchID      kernel.UUID
	name          string
	isConstructed bool
}

func NewMenu(id, branchID kernel.UUID, name string) (*Menu, error) {
	m := &Menu{isConstructed: true}

	if err := errors.Join(m.setID(id), m.setBranchID(branchID), m.setName(name)); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Menu) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuIsNotConstructed
	}
	return nil
}

func (m *Menu) ID() kernel.UUID {
	return m.id
}

func (m *Menu) BranchID() kernel.UUID {
	return m.branchID
}

func (m *Menu) Name() string {
	return m.name
}

func (m *Menu) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Menu) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.branchID = id
	return nil
}

func (m *Menu) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}
