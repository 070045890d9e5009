package services

import (
	"context"

	"parcels/internal/core/domain/model/rule"
)

// Static default department names used when no rule matches a parcel.
const (
	DefaultDepartmentMail    = "Mail"
	DefaultDepartmentRegular = "Regular"
	DefaultDepartmentHeavy   = "Heavy"
)

// DefaultDepartmentNameForWeight maps a parcel weight to the static fallback
// department name. Up to 1 kg routes to Mail, up to 10 kg to Regular, heavier
// to Heavy. A parcel without a weight has no default and stays unassigned.
func DefaultDepartmentNameForWeight(weightKg *float64) string {
	switch {
	case weightKg == nil:
		return ""
	case *weightKg <= 1:
		return DefaultDepartmentMail
	case *weightKg <= 10:
		return DefaultDepartmentRegular
	default:
		return DefaultDepartmentHeavy
	}
}

// AssignmentResolver produces the final department assignment for an incoming
// parcel by walking a fixed precedence chain:
//
//  1. An explicit department reference on the record, when it resolves.
//  2. The routing rules, first match wins.
//  3. The static per-weight default department, when it resolves.
//
// Each step only applies when the previous one produced nothing; a parcel can
// still end up unassigned when all three come up empty. Insurance takes
// precedence over all of it: a parcel that requires insurance approval gets no
// assignment until it is approved.
type AssignmentResolver struct {
	evaluator RuleEvaluator
	resolver  DepartmentResolver
}

// NewAssignmentResolver creates a resolver from its two collaborators.
func NewAssignmentResolver(evaluator RuleEvaluator, resolver DepartmentResolver) AssignmentResolver {
	return AssignmentResolver{
		evaluator: evaluator,
		resolver:  resolver,
	}
}

// Evaluator exposes the underlying rule evaluator, for callers that need the
// bare threshold check or rule evaluation without the precedence chain.
func (a AssignmentResolver) Evaluator() RuleEvaluator {
	return a.evaluator
}

// Resolve determines the routing outcome for a normalized parcel draft.
//
// When the draft's value crosses the insurance threshold the outcome carries
// RequiresInsurance and no assignment, regardless of explicit references or
// matching rules. Department resolution failures on the explicit and default
// paths degrade to "no assignment from this step"; only the rule path can
// surface nothing at all. Resolve never returns an error.
func (a AssignmentResolver) Resolve(
	ctx context.Context,
	draft ParcelDraft,
	rules []*rule.Rule,
) RoutingOutcome {
	if a.evaluator.RequiresInsurance(draft.ValueEur) {
		return RoutingOutcome{
			RequiresInsurance: true,
			AppliedRuleNames:  []string{},
		}
	}

	if draft.ExplicitDepartment != "" {
		if dept, err := a.resolver.Resolve(ctx, draft.ExplicitDepartment); err == nil && dept != nil {
			id := dept.ID()
			return RoutingOutcome{
				AssignedDepartment:     &id,
				AssignedDepartmentName: dept.Name(),
				AppliedRuleNames:       []string{},
			}
		}
	}

	outcome := a.evaluator.Evaluate(ctx, draft.WeightKg, draft.ValueEur, rules)
	if outcome.AssignedDepartment != nil {
		return outcome
	}

	return a.resolveDefault(ctx, draft.WeightKg, outcome)
}

// ResolveDefault applies only the static per-weight default, skipping explicit
// references and rules. Used on insurance approval, where the routing decision
// was deliberately deferred and rules are not re-consulted.
func (a AssignmentResolver) ResolveDefault(ctx context.Context, weightKg *float64) RoutingOutcome {
	return a.resolveDefault(ctx, weightKg, RoutingOutcome{AppliedRuleNames: []string{}})
}

func (a AssignmentResolver) resolveDefault(
	ctx context.Context,
	weightKg *float64,
	outcome RoutingOutcome,
) RoutingOutcome {
	name := DefaultDepartmentNameForWeight(weightKg)
	if name == "" {
		return outcome
	}

	dept, err := a.resolver.Resolve(ctx, name)
	if err != nil || dept == nil {
		return outcome
	}

	id := dept.ID()
	outcome.AssignedDepartment = &id
	outcome.AssignedDepartmentName = dept.Name()
	return outcome
}
