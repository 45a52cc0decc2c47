package access

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Role is the privilege level of a Principal.
type Role int

const (
	UnknownRole Role = iota
	Admin
	BranchUser
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "UNKNOWN",
		Admin:       "ADMIN",
		BranchUser:  "BRANCH_USER",
	}
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if r != Admin && r != BranchUser {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole accepts the upper-case names ADMIN and BRANCH_USER, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return Admin, nil
	case "BRANCH_USER":
		return BranchUser, nil
	default:
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}
