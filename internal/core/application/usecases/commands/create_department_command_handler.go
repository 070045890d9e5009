package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/department"
	"parcels/internal/pkg/errs"
)

// ErrDepartmentAlreadyExists is returned when a department with the same name
// is already registered. Name matching is case-insensitive.
var ErrDepartmentAlreadyExists = errors.New("department with this name already exists")

// CreateDepartmentCommandHandler handles department registration.
type CreateDepartmentCommandHandler struct {
	uowFactory DepartmentUoWFactory
}

// NewCreateDepartmentCommandHandler creates a handler for department registration.
// Requires a DepartmentUoWFactory for transactional persistence.
func NewCreateDepartmentCommandHandler(uowFactory DepartmentUoWFactory) CreateDepartmentCommandHandler {
	return CreateDepartmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the department registration command.
// Rejects a name that is already taken, then persists the new department.
func (h CreateDepartmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDepartmentCommand,
) (*department.Department, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departmentRepo := uow.DepartmentRepository()

	existing, err := departmentRepo.GetByName(ctx, cmd.Name())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDepartmentAlreadyExists
	}

	dept, err := department.NewDepartment(cmd.DepartmentID(), cmd.Name(), cmd.Description())
	if err != nil {
		return nil, err
	}

	if err = departmentRepo.Add(ctx, dept); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return dept, nil
}
