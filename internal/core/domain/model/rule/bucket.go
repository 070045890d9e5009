package rule

import (
	"errors"
	"math"
)

// ErrDepartmentRefIsRequired is returned when a bucket is constructed without
// a department reference.
var ErrDepartmentRefIsRequired = errors.New("bucket department reference is required")

// Bucket is a weight-ceiling-to-department mapping within a weight-type rule.
// A bucket with no upper bound is a catch-all and matches any remaining weight.
type Bucket struct {
	departmentRef string
	maxKg         *float64
}

// NewBucket creates a bucket pointing at a department by id or name.
// maxKg may be nil, meaning unbounded (catch-all).
func NewBucket(departmentRef string, maxKg *float64) (Bucket, error) {
	if departmentRef == "" {
		return Bucket{}, ErrDepartmentRefIsRequired
	}

	return Bucket{departmentRef: departmentRef, maxKg: maxKg}, nil
}

// DepartmentRef returns the department reference, a department id or name.
func (b Bucket) DepartmentRef() string {
	return b.departmentRef
}

// MaxKg returns the configured weight ceiling, or nil for a catch-all bucket.
func (b Bucket) MaxKg() *float64 {
	return b.maxKg
}

// Ceiling returns the effective numeric ceiling used during evaluation.
// A missing or non-finite maxKg maps to +Inf, so a malformed ceiling behaves
// as a catch-all rather than an error.
func (b Bucket) Ceiling() float64 {
	if b.maxKg == nil || math.IsNaN(*b.maxKg) || math.IsInf(*b.maxKg, 0) {
		return math.Inf(1)
	}
	return *b.maxKg
}

// IsCatchAll reports whether the bucket has no finite upper bound.
func (b Bucket) IsCatchAll() bool {
	return math.IsInf(b.Ceiling(), 1)
}
