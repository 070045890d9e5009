// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcels/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// DepartmentRepoFactory provides access to the department repository within a transaction.
	DepartmentRepoFactory interface {
		DepartmentRepository() ports.DepartmentRepository
	}

	// RuleRepoFactory provides access to the rule repository within a transaction.
	RuleRepoFactory interface {
		RuleRepository() ports.RuleRepository
	}

	// DepartmentUoW manages transactions for department-only operations.
	DepartmentUoW interface {
		TxManager
		DepartmentRepoFactory
	}

	// DepartmentUoWFactory creates new department unit of work instances.
	DepartmentUoWFactory interface {
		Create() DepartmentUoW
	}

	// UoW manages transactions across parcel, department, and rule aggregates.
	// Routing decisions always span aggregates: ingesting a parcel reads rules
	// and departments, a rule change rewrites parcels.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	parcelRepo := uow.ParcelRepository()
	//	ruleRepo := uow.RuleRepository()
	//	// ... perform operations
	//
	//	err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		DepartmentRepoFactory
		RuleRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
