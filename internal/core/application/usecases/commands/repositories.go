// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, persistence and, after commit, event emission.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	IngredientRepoFactory interface {
		IngredientRepository() ports.IngredientRepository
	}

	AvailabilityRepoFactory interface {
		AvailabilityRepository() ports.AvailabilityRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for status changes of existing orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// MenuUoW manages transactions for dish changes.
	MenuUoW interface {
		TxManager
		MenuRepoFactory
	}

	MenuUoWFactory interface {
		Create() MenuUoW
	}

	// AvailabilityUoW manages transactions that touch ingredient state at branches.
	AvailabilityUoW interface {
		TxManager
		BranchRepoFactory
		IngredientRepoFactory
		AvailabilityRepoFactory
	}

	AvailabilityUoWFactory interface {
		Create() AvailabilityUoW
	}

	// UoW spans every repository. Order creation needs all of them: branch
	// existence, dishes, ingredient availability and the order itself.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   dishes, err := uow.MenuRepository().GetDishes(ctx, ids)
	//   // ... resolve availability, build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		BranchRepoFactory
		MenuRepoFactory
		IngredientRepoFactory
		AvailabilityRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
