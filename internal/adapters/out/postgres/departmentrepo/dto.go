// Package departmentrepo provides data transfer objects and mapping functions
// for department persistence.
package departmentrepo

import (
	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DepartmentDTO represents the database structure for persisting department
// aggregates. Names carry a unique index; lookups compare lowercased values.
type DepartmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex"`
	Description string
}

// TableName specifies the database table name for department entities.
func (DepartmentDTO) TableName() string {
	return "departments"
}

// fromDomain converts a department domain aggregate to its database representation.
func fromDomain(aggregate *department.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Description: aggregate.Description(),
	}
}

// toDomain converts a database DTO to a department domain aggregate.
func toDomain(dto DepartmentDTO) (*department.Department, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return department.RestoreDepartment(id, dto.Name, dto.Description)
}
