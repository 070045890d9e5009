package commands_test

import (
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

func newFullUoW(
	parcelRepo *MockParcelRepository,
	deptRepo *MockDepartmentRepository,
	ruleRepo *MockRuleRepository,
) *MockUoW {
	uow := new(MockUoW)
	uow.On("ParcelRepository").Return(parcelRepo).Maybe()
	uow.On("DepartmentRepository").Return(deptRepo).Maybe()
	uow.On("RuleRepository").Return(ruleRepo).Maybe()
	return uow
}

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	mail, err := department.NewDepartment(kernel.NewUUID(), "Mail", "")
	require.NoError(t, err)

	cmd, err := commands.NewCreateParcelCommand(parcelID, map[string]any{
		"trackingId":  "TRK-1",
		"weightKg":    0.5,
		"destination": "Berlin",
	})
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	deptRepo := new(MockDepartmentRepository)
	ruleRepo := new(MockRuleRepository)
	uow := newFullUoW(parcelRepo, deptRepo, ruleRepo)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetByTrackingID", ctx, "TRK-1").
		Return(nil, errs.NewObjectNotFoundError("trackingId", "TRK-1")).Once()
	ruleRepo.On("GetAll", ctx).Return([]*rule.Rule{}, nil).Once()
	deptRepo.On("GetByName", ctx, "Mail").Return(mail, nil).Once()
	parcelRepo.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, 1000)
	p, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.ID().IsEqual(parcelID))
	assert.Equal(t, "TRK-1", p.TrackingID())
	assert.Equal(t, parcel.StatusNotRequired, p.ApprovalStatus())
	require.NotNil(t, p.Department())
	assert.True(t, p.Department().IsEqual(mail.ID()))
	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_Duplicate(t *testing.T) {
	ctx := t.Context()
	existing, err := parcel.NewParcel(kernel.NewUUID(), "TRK-1", nil, nil, "", "")
	require.NoError(t, err)

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), map[string]any{
		"trackingId": "TRK-1",
	})
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := newFullUoW(parcelRepo, new(MockDepartmentRepository), new(MockRuleRepository))

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetByTrackingID", ctx, "TRK-1").Return(existing, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, 1000)
	p, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDuplicateTrackingID)
	assert.Nil(t, p)
	parcelRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateParcelCommandHandler_Handle_HighValueGoesPending(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), map[string]any{
		"trackingId": "TRK-2",
		"weightKg":   0.5,
		"valueEur":   2500.0,
	})
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	deptRepo := new(MockDepartmentRepository)
	ruleRepo := new(MockRuleRepository)
	uow := newFullUoW(parcelRepo, deptRepo, ruleRepo)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("GetByTrackingID", ctx, "TRK-2").
		Return(nil, errs.NewObjectNotFoundError("trackingId", "TRK-2")).Once()
	ruleRepo.On("GetAll", ctx).Return([]*rule.Rule{}, nil).Once()
	parcelRepo.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, 1000)
	p, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, parcel.StatusPending, p.ApprovalStatus())
	assert.Nil(t, p.Department())
	deptRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestNewCreateParcelCommand_Validation(t *testing.T) {
	t.Run("should reject empty record", func(t *testing.T) {
		_, err := commands.NewCreateParcelCommand(kernel.NewUUID(), nil)
		require.ErrorIs(t, err, commands.ErrRecordIsRequired)
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		h := commands.NewCreateParcelCommandHandler(new(MockUoWFactory), 1000)
		_, err := h.Handle(t.Context(), commands.CreateParcelCommand{})
		require.Error(t, err)
	})
}
