package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrCreateDepartmentCommandIsNotConstructed = errors.New(
		"CreateDepartmentCommand must be created via NewCreateDepartmentCommand constructor",
	)
	ErrDepartmentNameIsRequired = errors.New("department name is required")
)

// CreateDepartmentCommand represents a request to register a routing
// department. Departments are the targets of every routing decision; rules
// and explicit assignments reference them by id or name.
type CreateDepartmentCommand struct { //nolint:recvcheck //using for validation
	departmentID kernel.UUID
	name         string
	description  string

	guard guard.ConstructorGuard
}

// NewCreateDepartmentCommand creates a command to register a department.
// Validates that the id is valid and the name is not empty.
func NewCreateDepartmentCommand(
	departmentID kernel.UUID,
	name string,
	description string,
) (CreateDepartmentCommand, error) {
	command := CreateDepartmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDepartmentID(departmentID),
		command.setName(name),
	); err != nil {
		return CreateDepartmentCommand{}, err
	}

	command.description = description
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDepartmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateDepartmentCommandIsNotConstructed)
}

// DepartmentID returns the unique identifier for the department.
func (c CreateDepartmentCommand) DepartmentID() kernel.UUID {
	return c.departmentID
}

// Name returns the department name.
func (c CreateDepartmentCommand) Name() string {
	return c.name
}

// Description returns the optional department description.
func (c CreateDepartmentCommand) Description() string {
	return c.description
}

func (c *CreateDepartmentCommand) setDepartmentID(departmentID kernel.UUID) error {
	if err := departmentID.Validate(); err != nil {
		return err
	}

	c.departmentID = departmentID
	return nil
}

func (c *CreateDepartmentCommand) setName(name string) error {
	if name == "" {
		return ErrDepartmentNameIsRequired
	}

	c.name = name
	return nil
}
