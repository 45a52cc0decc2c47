package access

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is a pre-verified caller identity.
//
// A BRANCH_USER must be bound to a branch; an ADMIN may carry one but it is
// never consulted.
type Principal struct {
	role     Role
	branchID *kernel.UUID
	subject  string
	guard    guard.ConstructorGuard
}

func NewPrincipal(role Role, branchID *kernel.UUID, subject string) (*Principal, error) {
	p := &Principal{
		subject: subject,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setRole(role), p.setBranch(role, branchID)); err != nil {
		return nil, err
	}

	return p, nil
}

// NewAdmin is a shorthand for an unbound ADMIN principal.
func NewAdmin(subject string) *Principal {
	return &Principal{role: Admin, subject: subject, guard: guard.NewConstructorGuard()}
}

// NewBranchUser is a shorthand for a BRANCH_USER bound to branchID.
func NewBranchUser(branchID kernel.UUID, subject string) (*Principal, error) {
	return NewPrincipal(BranchUser, &branchID, subject)
}

func (p *Principal) Validate() error {
	if p == nil {
		return ErrPrincipalIsNotConstructed
	}
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

func (p *Principal) Role() Role {
	return p.role
}

// BranchID returns the bound branch, nil when unbound.
func (p *Principal) BranchID() *kernel.UUID {
	if p.branchID == nil {
		return nil
	}
	id := *p.branchID
	return &id
}

// Subject identifies the caller in audit fields such as updatedBy.
func (p *Principal) Subject() string {
	if p.subject == "" {
		return p.role.String()
	}
	return p.subject
}

func (p *Principal) IsAdmin() bool {
	return p.role == Admin
}

// IsBoundTo reports whether the principal is bound to branchID.
func (p *Principal) IsBoundTo(branchID kernel.UUID) bool {
	return p.branchID != nil && p.branchID.IsEqual(branchID)
}

func (p *Principal) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}

func (p *Principal) setBranch(role Role, branchID *kernel.UUID) error {
	if branchID == nil {
		if role == BranchUser {
			return errs.NewValueIsRequiredError("branchID")
		}
		return nil
	}
	if err := branchID.Validate(); err != nil {
		return err
	}
	id := *branchID
	p.branchID = &id
	return nil
}
