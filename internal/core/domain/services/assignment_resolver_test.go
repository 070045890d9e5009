package services_test

import (
	"testing"

	"parcels/internal/core/domain/model/rule"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDefaultDepartmentNameForWeight(t *testing.T) {
	t.Run("should map weight bands to static departments", func(t *testing.T) {
		assert.Equal(t, services.DefaultDepartmentMail, services.DefaultDepartmentNameForWeight(ptr(0.2)))
		assert.Equal(t, services.DefaultDepartmentMail, services.DefaultDepartmentNameForWeight(ptr(1)))
		assert.Equal(t, services.DefaultDepartmentRegular, services.DefaultDepartmentNameForWeight(ptr(1.01)))
		assert.Equal(t, services.DefaultDepartmentRegular, services.DefaultDepartmentNameForWeight(ptr(10)))
		assert.Equal(t, services.DefaultDepartmentHeavy, services.DefaultDepartmentNameForWeight(ptr(10.5)))
	})

	t.Run("should have no default for missing weight", func(t *testing.T) {
		assert.Equal(t, "", services.DefaultDepartmentNameForWeight(nil))
	})
}

func newAssignmentResolver(lookup *MockDepartmentLookup) services.AssignmentResolver {
	deptResolver := services.NewDepartmentResolver(lookup)
	return services.NewAssignmentResolver(services.NewRuleEvaluator(deptResolver, 0), deptResolver)
}

func TestAssignmentResolver_Resolve(t *testing.T) {
	ctx := t.Context()

	t.Run("should prefer resolvable explicit department over rules", func(t *testing.T) {
		fragile := mustDepartment(t, "Fragile")
		mail := mustDepartment(t, "Mail")

		lookup := new(MockDepartmentLookup)
		lookup.On("GetByName", ctx, "Fragile").Return(fragile, nil).Once()
		lookup.On("GetByName", mock.Anything, "Mail").Return(mail, nil).Maybe()
		resolver := newAssignmentResolver(lookup)

		r := mustWeightRule(t, "standard", 10, `{"buckets":[{"department":"Mail","maxKg":1}]}`)
		draft := services.ParcelDraft{WeightKg: ptr(0.5), ExplicitDepartment: "Fragile"}

		outcome := resolver.Resolve(ctx, draft, []*rule.Rule{r})

		require.NotNil(t, outcome.AssignedDepartment)
		assert.True(t, outcome.AssignedDepartment.IsEqual(fragile.ID()))
		assert.Empty(t, outcome.AppliedRuleNames)
		lookup.AssertNotCalled(t, "GetByName", ctx, "Mail")
	})

	t.Run("should fall through to rules when explicit reference does not resolve", func(t *testing.T) {
		mail := mustDepartment(t, "Mail")

		lookup := new(MockDepartmentLookup)
		lookup.On("GetByName", ctx, "Ghost").
			Return(nil, errs.NewObjectNotFoundError("name", "Ghost")).Once()
		lookup.On("GetByName", ctx, "Mail").Return(mail, nil).Once()
		resolver := newAssignmentResolver(lookup)

		r := mustWeightRule(t, "standard", 10, `{"buckets":[{"department":"Mail","maxKg":1}]}`)
		draft := services.ParcelDraft{WeightKg: ptr(0.5), ExplicitDepartment: "Ghost"}

		outcome := resolver.Resolve(ctx, draft, []*rule.Rule{r})

		require.NotNil(t, outcome.AssignedDepartment)
		assert.True(t, outcome.AssignedDepartment.IsEqual(mail.ID()))
		assert.Equal(t, []string{"standard"}, outcome.AppliedRuleNames)
		lookup.AssertExpectations(t)
	})

	t.Run("should fall back to static default when no rule matches", func(t *testing.T) {
		regular := mustDepartment(t, "Regular")

		lookup := new(MockDepartmentLookup)
		lookup.On("GetByName", ctx, "Regular").Return(regular, nil).Once()
		resolver := newAssignmentResolver(lookup)

		draft := services.ParcelDraft{WeightKg: ptr(5)}

		outcome := resolver.Resolve(ctx, draft, nil)

		require.NotNil(t, outcome.AssignedDepartment)
		assert.True(t, outcome.AssignedDepartment.IsEqual(regular.ID()))
		assert.Equal(t, "Regular", outcome.AssignedDepartmentName)
		assert.Empty(t, outcome.AppliedRuleNames)
	})

	t.Run("should leave parcel unassigned when default department is missing", func(t *testing.T) {
		lookup := new(MockDepartmentLookup)
		lookup.On("GetByName", ctx, "Heavy").
			Return(nil, errs.NewObjectNotFoundError("name", "Heavy")).Once()
		resolver := newAssignmentResolver(lookup)

		draft := services.ParcelDraft{WeightKg: ptr(25)}

		outcome := resolver.Resolve(ctx, draft, nil)

		assert.Nil(t, outcome.AssignedDepartment)
	})

	t.Run("should leave parcel without weight unassigned", func(t *testing.T) {
		lookup := new(MockDepartmentLookup)
		resolver := newAssignmentResolver(lookup)

		outcome := resolver.Resolve(ctx, services.ParcelDraft{}, nil)

		assert.Nil(t, outcome.AssignedDepartment)
		assert.False(t, outcome.RequiresInsurance)
		lookup.AssertExpectations(t)
	})

	t.Run("should skip all assignment when insurance is required", func(t *testing.T) {
		lookup := new(MockDepartmentLookup)
		resolver := newAssignmentResolver(lookup)

		r := mustWeightRule(t, "standard", 10, `{"buckets":[{"department":"Mail"}]}`)
		draft := services.ParcelDraft{
			WeightKg:           ptr(0.5),
			ValueEur:           ptr(2500),
			ExplicitDepartment: "Fragile",
		}

		outcome := resolver.Resolve(ctx, draft, []*rule.Rule{r})

		assert.True(t, outcome.RequiresInsurance)
		assert.Nil(t, outcome.AssignedDepartment)
		lookup.AssertExpectations(t)
	})
}

func TestAssignmentResolver_ResolveDefault(t *testing.T) {
	ctx := t.Context()

	t.Run("should apply only the static default", func(t *testing.T) {
		mail := mustDepartment(t, "Mail")

		lookup := new(MockDepartmentLookup)
		lookup.On("GetByName", ctx, "Mail").Return(mail, nil).Once()
		resolver := newAssignmentResolver(lookup)

		outcome := resolver.ResolveDefault(ctx, ptr(0.8))

		require.NotNil(t, outcome.AssignedDepartment)
		assert.True(t, outcome.AssignedDepartment.IsEqual(mail.ID()))
	})

	t.Run("should leave missing weight unassigned", func(t *testing.T) {
		lookup := new(MockDepartmentLookup)
		resolver := newAssignmentResolver(lookup)

		outcome := resolver.ResolveDefault(ctx, nil)

		assert.Nil(t, outcome.AssignedDepartment)
		lookup.AssertExpectations(t)
	})
}
