// Package kernel provides the value objects shared by every aggregate of the
// ordering core.
//
// The package includes:
//   - UUID: identifier for branches, menus, dishes, ingredients and orders
//   - Coordinates: geographic position of a branch
//
// Both are immutable and can only be obtained through their constructors; the
// zero value fails Validate.
package kernel
