package commands

import (
	"context"

	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// departmentLookup adapts a transaction-bound DepartmentRepository to the
// domain's string-keyed DepartmentLookup port.
type departmentLookup struct {
	repo ports.DepartmentRepository
}

// NewDepartmentLookup wraps a department repository for use by domain
// resolution services.
func NewDepartmentLookup(repo ports.DepartmentRepository) services.DepartmentLookup {
	return departmentLookup{repo: repo}
}

func (l departmentLookup) GetByID(ctx context.Context, id string) (*department.Department, error) {
	departmentID, err := kernel.UUIDFromString(id)
	if err != nil {
		return nil, errs.NewObjectNotFoundError("departmentID", id)
	}

	return l.repo.Get(ctx, departmentID)
}

func (l departmentLookup) GetByName(ctx context.Context, name string) (*department.Department, error) {
	return l.repo.GetByName(ctx, name)
}
