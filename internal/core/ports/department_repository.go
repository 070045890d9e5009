package ports

import (
	"context"

	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/kernel"
)

// DepartmentRepository defines the persistence contract for department
// aggregates. It satisfies the domain's DepartmentLookup needs through
// string-keyed accessors so resolution sites stay storage-agnostic.
type DepartmentRepository interface {
	// Add persists a new department aggregate to storage.
	// Department names are unique.
	Add(ctx context.Context, aggregate *department.Department) error

	// Get retrieves a department aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*department.Department, error)

	// GetByName retrieves a department by case-insensitive exact name match.
	GetByName(ctx context.Context, name string) (*department.Department, error)

	// GetAll retrieves every stored department, ordered by name.
	GetAll(ctx context.Context) ([]*department.Department, error)
}
