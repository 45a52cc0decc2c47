package services

import (
	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// AccessGuard decides whether a principal may perform an action on a branch.
//
// Checks run in a fixed order:
//   - no principal: AuthenticationRequiredError
//   - branch-scoped action without a valid branch: ValueIsRequiredError("branchID")
//   - ADMIN: allowed
//   - BRANCH_USER bound to the branch: allowed
//   - anything else: AccessDeniedError
//
// ManageCatalog is global and only ADMIN passes it.
type AccessGuard struct{}

func NewAccessGuard() AccessGuard {
	return AccessGuard{}
}

// Authorize returns nil when the action is allowed.
func (g AccessGuard) Authorize(principal *access.Principal, branchID *kernel.UUID, action access.Action) error {
	if principal == nil || principal.Validate() != nil {
		return errs.NewAuthenticationRequiredError(action.String())
	}

	if action.RequiresBranch() && (branchID == nil || branchID.Validate() != nil) {
		return errs.NewValueIsRequiredError("branchID")
	}

	if principal.IsAdmin() {
		return nil
	}

	if !action.RequiresBranch() {
		return errs.NewAccessDeniedError(action.String(), "action is reserved to ADMIN")
	}

	if principal.IsBoundTo(*branchID) {
		return nil
	}

	return errs.NewAccessDeniedError(action.String(), "principal is not bound to branch "+branchID.String())
}
