package commands_test

import (
	"context"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, trackingID string) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAll(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllRouted(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllUnassigned(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockDepartmentRepository struct{ mock.Mock }

func (m *MockDepartmentRepository) Add(ctx context.Context, aggregate *department.Department) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDepartmentRepository) Get(ctx context.Context, id kernel.UUID) (*department.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*department.Department), args.Error(1)
}

func (m *MockDepartmentRepository) GetByName(ctx context.Context, name string) (*department.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*department.Department), args.Error(1)
}

func (m *MockDepartmentRepository) GetAll(ctx context.Context) ([]*department.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*department.Department), args.Error(1)
}

type MockRuleRepository struct{ mock.Mock }

func (m *MockRuleRepository) Add(ctx context.Context, aggregate *rule.Rule) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRuleRepository) Update(ctx context.Context, aggregate *rule.Rule) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRuleRepository) Get(ctx context.Context, id kernel.UUID) (*rule.Rule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rule.Rule), args.Error(1)
}

func (m *MockRuleRepository) GetAll(ctx context.Context) ([]*rule.Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rule.Rule), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) DepartmentRepository() ports.DepartmentRepository {
	args := m.Called()
	return args.Get(0).(ports.DepartmentRepository)
}

func (m *MockUoW) RuleRepository() ports.RuleRepository {
	args := m.Called()
	return args.Get(0).(ports.RuleRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDepartmentUoW struct{ mock.Mock }

func (m *MockDepartmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDepartmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDepartmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDepartmentUoW) DepartmentRepository() ports.DepartmentRepository {
	args := m.Called()
	return args.Get(0).(ports.DepartmentRepository)
}

type MockDepartmentUoWFactory struct{ mock.Mock }

func (m *MockDepartmentUoWFactory) Create() commands.DepartmentUoW {
	args := m.Called()
	return args.Get(0).(commands.DepartmentUoW)
}
