package department

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
)

var (
	// ErrDepartmentIsNotConstructed is returned when a Department instance was
	// not created through NewDepartment.
	ErrDepartmentIsNotConstructed = errors.New("Department must be created via NewDepartment constructor")

	// ErrNameIsRequired is returned when a department is constructed without a name.
	ErrNameIsRequired = errors.New("department name is required")
)

// Department represents a handling department that parcels are routed to.
// Departments are reference data during evaluation: rule buckets and explicit
// assignments point at them by id or by case-insensitive name.
//
// Invariants:
//   - Must have a valid unique identifier
//   - Must have a non-empty name, unique case-insensitively across departments
//     (enforced by storage)
type Department struct {
	id          kernel.UUID
	name        string
	description string

	isConstructed bool
}

// NewDepartment creates a new Department with validation.
func NewDepartment(id kernel.UUID, name string, description string) (*Department, error) {
	d := &Department{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDepartment reconstructs a Department from persistence.
func RestoreDepartment(id kernel.UUID, name string, description string) (*Department, error) {
	return NewDepartment(id, name, description)
}

// Validate ensures the Department was created through its constructor.
func (d *Department) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDepartmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two departments by their unique identifiers.
func (d *Department) IsEqual(other *Department) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the department's unique identifier.
func (d *Department) ID() kernel.UUID {
	return d.id
}

// Name returns the department name.
func (d *Department) Name() string {
	return d.name
}

// Description returns the free-form description, possibly empty.
func (d *Department) Description() string {
	return d.description
}

func (d *Department) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Department) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
