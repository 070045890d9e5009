package commands

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
)

// routingServices bundles the domain services needed to route a parcel within
// one unit of work. The department resolver is bound to the transaction's
// repository, so a fresh bundle is built per transaction.
type routingServices struct {
	normalizer services.RecordNormalizer
	resolver   services.DepartmentResolver
	assigner   services.AssignmentResolver
}

func newRoutingServices(repos DepartmentRepoFactory, insuranceThresholdEur float64) routingServices {
	resolver := services.NewDepartmentResolver(NewDepartmentLookup(repos.DepartmentRepository()))
	evaluator := services.NewRuleEvaluator(resolver, insuranceThresholdEur)

	return routingServices{
		normalizer: services.NewRecordNormalizer(),
		resolver:   resolver,
		assigner:   services.NewAssignmentResolver(evaluator, resolver),
	}
}

// buildParcel constructs a parcel aggregate from a normalized draft and its
// routing outcome: insurance gating first, then the department assignment.
func buildParcel(
	parcelID kernel.UUID,
	draft services.ParcelDraft,
	outcome services.RoutingOutcome,
) (*parcel.Parcel, error) {
	p, err := parcel.NewParcel(
		parcelID,
		draft.TrackingID,
		draft.WeightKg,
		draft.ValueEur,
		draft.Destination,
		draft.RawSource,
	)
	if err != nil {
		return nil, err
	}

	if outcome.RequiresInsurance {
		if err = p.RequireInsurance(); err != nil {
			return nil, err
		}
		return p, nil
	}

	if err = p.MarkInsuranceNotRequired(); err != nil {
		return nil, err
	}

	if outcome.AssignedDepartment != nil {
		if err = p.AssignDepartment(*outcome.AssignedDepartment); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// applyOutcome transfers a fresh routing outcome onto an existing parcel.
// Used by re-evaluation flows; an empty outcome leaves the parcel untouched.
func applyOutcome(p *parcel.Parcel, outcome services.RoutingOutcome) (bool, error) {
	if outcome.AssignedDepartment == nil {
		return false, nil
	}

	if current := p.Department(); current != nil && current.IsEqual(*outcome.AssignedDepartment) {
		return false, nil
	}

	if err := p.AssignDepartment(*outcome.AssignedDepartment); err != nil {
		return false, err
	}

	return true, nil
}
