// Package services provides the pure domain services of the ordering core:
// decisions that span several aggregates and need no store access.
//
// The package includes:
//   - AccessGuard: the single authorization decision for every branch-scoped operation
//   - AvailabilityResolver: effective ingredient and dish availability at a branch
package services
