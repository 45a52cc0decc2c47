// Package ingredient provides the Ingredient aggregate and the per-branch
// availability override record.
//
// Effective availability of an ingredient at a branch combines three inputs:
//   - the BranchAvailability override (an absent record means available)
//   - the global expired flag on the Ingredient
//   - the per-branch expired flag on the Ingredient
//
// The combination itself lives in the domain services package.
package ingredient
