package commands

import (
	"context"
	"encoding/json"

	"parcels/internal/core/domain/model/rule"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

// canonicalBucket is the normalized storage form of one weight bucket:
// a canonical department id plus an optional ceiling.
type canonicalBucket struct {
	DepartmentID string   `json:"departmentId"`
	MaxKg        *float64 `json:"maxKg,omitempty"`
}

type canonicalWeightConfig struct {
	Buckets []canonicalBucket `json:"buckets"`
}

// normalizeRuleConfig rewrites a weight rule's config into canonical form:
// every bucket's department reference is resolved and replaced with the
// department's id. A reference that does not resolve fails the whole rule,
// because a rule admin submitting a bad reference must hear about it now, not
// at evaluation time. Non-weight configs pass through untouched.
func normalizeRuleConfig(
	ctx context.Context,
	resolver services.DepartmentResolver,
	r *rule.Rule,
) (json.RawMessage, error) {
	if !r.IsWeight() {
		return r.Config(), nil
	}

	buckets := r.Buckets()
	canonical := canonicalWeightConfig{Buckets: make([]canonicalBucket, 0, len(buckets))}

	for _, b := range buckets {
		dept, err := resolver.Resolve(ctx, b.DepartmentRef())
		if err != nil {
			return nil, err
		}
		if dept == nil {
			return nil, errs.NewObjectNotFoundError("department", b.DepartmentRef())
		}

		canonical.Buckets = append(canonical.Buckets, canonicalBucket{
			DepartmentID: dept.ID().String(),
			MaxKg:        b.MaxKg(),
		})
	}

	return json.Marshal(canonical)
}
