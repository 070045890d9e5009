package commands_test

import (
	"errors"
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func unassignedParcel(t *testing.T, trackingID string, weightKg float64) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, &weightKg, nil, "", "")
	require.NoError(t, err)
	require.NoError(t, p.MarkInsuranceNotRequired())
	return p
}

func TestRouteUnassignedParcelsCommandHandler_Handle_AssignsByDefault(t *testing.T) {
	ctx := t.Context()
	regular, err := department.NewDepartment(kernel.NewUUID(), "Regular", "")
	require.NoError(t, err)

	p1 := unassignedParcel(t, "TRK-1", 3)
	p2 := unassignedParcel(t, "TRK-2", 7)

	parcelRepo := new(MockParcelRepository)
	deptRepo := new(MockDepartmentRepository)
	ruleRepo := new(MockRuleRepository)
	uow := newFullUoW(parcelRepo, deptRepo, ruleRepo)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetAllUnassigned", ctx).Return([]*parcel.Parcel{p1, p2}, nil).Once()
	ruleRepo.On("GetAll", ctx).Return([]*rule.Rule{}, nil).Once()
	deptRepo.On("GetByName", ctx, "Regular").Return(regular, nil)
	parcelRepo.On("Update", ctx, p1).Return(nil).Once()
	parcelRepo.On("Update", ctx, p2).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRouteUnassignedParcelsCommandHandler(factory, discardLogger())
	cmd := commands.NewRouteUnassignedParcelsCommand()
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, assigned)
	require.NotNil(t, p1.Department())
	assert.True(t, p1.Department().IsEqual(regular.ID()))
	parcelRepo.AssertExpectations(t)
}

func TestRouteUnassignedParcelsCommandHandler_Handle_NothingToRoute(t *testing.T) {
	ctx := t.Context()

	parcelRepo := new(MockParcelRepository)
	ruleRepo := new(MockRuleRepository)
	uow := newFullUoW(parcelRepo, new(MockDepartmentRepository), ruleRepo)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetAllUnassigned", ctx).Return([]*parcel.Parcel{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRouteUnassignedParcelsCommandHandler(factory, discardLogger())
	cmd := commands.NewRouteUnassignedParcelsCommand()
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, assigned)
	ruleRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestRouteUnassignedParcelsCommandHandler_Handle_SkipsFailures(t *testing.T) {
	ctx := t.Context()
	regular, err := department.NewDepartment(kernel.NewUUID(), "Regular", "")
	require.NoError(t, err)

	p1 := unassignedParcel(t, "TRK-1", 3)
	p2 := unassignedParcel(t, "TRK-2", 7)

	parcelRepo := new(MockParcelRepository)
	deptRepo := new(MockDepartmentRepository)
	ruleRepo := new(MockRuleRepository)
	uow := newFullUoW(parcelRepo, deptRepo, ruleRepo)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetAllUnassigned", ctx).Return([]*parcel.Parcel{p1, p2}, nil).Once()
	ruleRepo.On("GetAll", ctx).Return([]*rule.Rule{}, nil).Once()
	deptRepo.On("GetByName", ctx, "Regular").Return(regular, nil)
	parcelRepo.On("Update", ctx, p1).Return(errors.New("write conflict")).Once()
	parcelRepo.On("Update", ctx, p2).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRouteUnassignedParcelsCommandHandler(factory, discardLogger())
	cmd := commands.NewRouteUnassignedParcelsCommand()
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, assigned)
}

func TestRouteUnassignedParcelsCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()

	parcelRepo := new(MockParcelRepository)
	uow := newFullUoW(parcelRepo, new(MockDepartmentRepository), new(MockRuleRepository))

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetAllUnassigned", ctx).
		Return(nil, errs.NewObjectNotFoundError("parcels", "unassigned")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRouteUnassignedParcelsCommandHandler(factory, discardLogger())
	cmd := commands.NewRouteUnassignedParcelsCommand()
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}
