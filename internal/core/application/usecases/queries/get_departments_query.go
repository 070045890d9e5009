package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetDepartmentsQueryIsNotConstructed = errors.New(
	"GetDepartmentsQuery must be created via NewGetDepartmentsQuery constructor",
)

// GetDepartmentsQuery retrieves all registered departments.
type GetDepartmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDepartmentsQuery creates a query to retrieve all departments.
// This is a parameterless query.
func NewGetDepartmentsQuery() GetDepartmentsQuery {
	return GetDepartmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDepartmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDepartmentsQueryIsNotConstructed)
}

// GetDepartmentsQueryResponse represents one department in the read model.
type GetDepartmentsQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Description string
}
