// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetParcelsQueryIsNotConstructed = errors.New(
	"GetParcelsQuery must be created via NewGetParcelsQuery constructor",
)

// GetParcelsQuery retrieves stored parcels, optionally narrowed to one
// department. The department filter accepts an id or a case-insensitive name,
// matching the reference semantics used everywhere else.
type GetParcelsQuery struct {
	departmentRef string

	guard guard.ConstructorGuard
}

// NewGetParcelsQuery creates a query to retrieve parcels.
// An empty departmentRef returns every parcel.
func NewGetParcelsQuery(departmentRef string) GetParcelsQuery {
	return GetParcelsQuery{
		departmentRef: departmentRef,
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsQueryIsNotConstructed)
}

// DepartmentRef returns the optional department filter.
func (q GetParcelsQuery) DepartmentRef() string {
	return q.departmentRef
}

// GetParcelsQueryResponse represents one parcel in the read model.
type GetParcelsQueryResponse struct {
	ID             kernel.UUID
	TrackingID     string
	WeightKg       *float64
	ValueEur       *float64
	Destination    string
	DepartmentID   *kernel.UUID
	ApprovalStatus string
	ApprovedBy     *kernel.UUID
	ApprovedAt     *time.Time
}
