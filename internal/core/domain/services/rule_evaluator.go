package services

import (
	"context"
	"math"
	"sort"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"
)

// DefaultInsuranceThresholdEur is the insurance threshold applied when no
// explicit configuration is provided.
const DefaultInsuranceThresholdEur = 1000

// RoutingOutcome is the result of evaluating routing rules for a parcel.
type RoutingOutcome struct {
	// AssignedDepartment is the canonical id of the matched department,
	// nil when no rule produced an assignment.
	AssignedDepartment *kernel.UUID

	// AssignedDepartmentName is the matched department's name, empty when
	// no rule produced an assignment.
	AssignedDepartmentName string

	// RequiresInsurance reports the threshold check. It is always computed,
	// even though callers skip routing entirely when it is true.
	RequiresInsurance bool

	// AppliedRuleNames records, in order, the rules that produced the
	// assignment. With first-match-wins semantics it holds at most one entry.
	AppliedRuleNames []string
}

// RuleEvaluator evaluates an ordered set of routing rules against a
// normalized parcel to produce a department assignment.
//
// Evaluation semantics:
//   - Rules are tried in ascending priority order; ties keep their original
//     relative order, because rule storage order is otherwise unspecified.
//   - Only weight-type rules are evaluated; other types are skipped.
//   - Within a rule, buckets are tried in ascending ceiling order so narrower
//     buckets win over wider and catch-all ones regardless of storage order.
//   - The first bucket whose ceiling covers the parcel weight and whose
//     department reference resolves wins; the whole evaluation stops there.
//     Rules are not combined or layered.
//   - A bucket whose department reference does not resolve is skipped, not an
//     error; the evaluator always returns an outcome.
type RuleEvaluator struct {
	resolver              DepartmentResolver
	insuranceThresholdEur float64
}

// NewRuleEvaluator creates an evaluator with the given department resolver
// and insurance threshold in euros. A non-positive threshold falls back to
// DefaultInsuranceThresholdEur.
func NewRuleEvaluator(resolver DepartmentResolver, insuranceThresholdEur float64) RuleEvaluator {
	if insuranceThresholdEur <= 0 {
		insuranceThresholdEur = DefaultInsuranceThresholdEur
	}

	return RuleEvaluator{
		resolver:              resolver,
		insuranceThresholdEur: insuranceThresholdEur,
	}
}

// InsuranceThresholdEur returns the configured threshold.
func (e RuleEvaluator) InsuranceThresholdEur() float64 {
	return e.insuranceThresholdEur
}

// RequiresInsurance reports whether a parcel value requires manual insurance
// approval: the value is set and strictly exceeds the threshold.
func (e RuleEvaluator) RequiresInsurance(valueEur *float64) bool {
	return valueEur != nil && *valueEur > e.insuranceThresholdEur
}

// Evaluate runs the full rule set against a parcel's weight and value.
// The rules slice may arrive unsorted; it is not mutated.
func (e RuleEvaluator) Evaluate(
	ctx context.Context,
	weightKg *float64,
	valueEur *float64,
	rules []*rule.Rule,
) RoutingOutcome {
	outcome := RoutingOutcome{
		RequiresInsurance: e.RequiresInsurance(valueEur),
		AppliedRuleNames:  []string{},
	}

	sorted := make([]*rule.Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})

	for _, r := range sorted {
		if r == nil || !r.IsWeight() {
			continue
		}

		buckets := r.Buckets()
		if len(buckets) == 0 {
			continue
		}

		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].Ceiling() < buckets[j].Ceiling()
		})

		if dept := e.matchBuckets(ctx, weightKg, buckets); dept != nil {
			id := dept.ID()
			outcome.AssignedDepartment = &id
			outcome.AssignedDepartmentName = dept.Name()
			outcome.AppliedRuleNames = append(outcome.AppliedRuleNames, r.DisplayName())
			break
		}
	}

	return outcome
}

// matchBuckets walks ceiling-sorted buckets and returns the department of the
// first bucket that covers the weight and resolves. A parcel without a weight
// can only land in a catch-all bucket. Resolution failures skip the bucket;
// the rest of the rule is still tried.
func (e RuleEvaluator) matchBuckets(
	ctx context.Context,
	weightKg *float64,
	buckets []rule.Bucket,
) *departmentMatch {
	for _, b := range buckets {
		if !bucketCovers(b, weightKg) {
			continue
		}

		dept, err := e.resolver.Resolve(ctx, b.DepartmentRef())
		if err != nil || dept == nil {
			continue
		}

		return &departmentMatch{id: dept.ID(), name: dept.Name()}
	}
	return nil
}

func bucketCovers(b rule.Bucket, weightKg *float64) bool {
	if weightKg == nil || math.IsNaN(*weightKg) || math.IsInf(*weightKg, 0) {
		return b.IsCatchAll()
	}
	return b.Ceiling() >= *weightKg
}

type departmentMatch struct {
	id   kernel.UUID
	name string
}

func (m *departmentMatch) ID() kernel.UUID {
	return m.id
}

func (m *departmentMatch) Name() string {
	return m.name
}
