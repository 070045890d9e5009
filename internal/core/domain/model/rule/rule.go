package rule

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrRuleIsNotConstructed is returned when a Rule instance was not created
	// through NewRule or RestoreRule.
	ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule or RestoreRule constructor")

	// ErrTypeIsRequired is returned when a rule is constructed without a type.
	ErrTypeIsRequired = errors.New("rule type is required")
)

// Type categorises the routing strategy a rule implements.
// Only TypeWeight is evaluated; rules of other types are preserved verbatim
// and skipped by the evaluator.
type Type string

// TypeWeight routes by weight buckets: an ordered collection of
// department references with weight ceilings.
const TypeWeight Type = "weight"

// DefaultVersion is assigned to rules created without an explicit version.
const DefaultVersion = "1.0"

// DefaultPriority is assigned to rules created without an explicit priority.
const DefaultPriority = 10

// Rule is a declarative routing rule. Rules are evaluated in ascending
// priority order (lower evaluates first); the configuration payload is an
// opaque JSON document whose schema depends on the rule type.
//
// For weight rules the config carries a "buckets" array; each bucket holds a
// department reference (id or name, under one of several accepted keys) and
// an optional maxKg ceiling. The buckets are parsed once at construction and
// exposed through Buckets; the raw config is preserved unmodified so rule
// types this service does not evaluate survive a storage round-trip.
type Rule struct {
	id       kernel.UUID
	name     string
	ruleType Type
	priority int
	version  string
	config   json.RawMessage
	buckets  []Bucket

	isConstructed bool
}

// bucketConfig mirrors one entry of the "buckets" array in a weight rule
// config. The department reference is accepted under several legacy keys.
type bucketConfig struct {
	DepartmentID json.RawMessage `json:"departmentId"`
	Department   json.RawMessage `json:"department"`
	DeptID       json.RawMessage `json:"deptId"`
	Dept         json.RawMessage `json:"dept"`
	Name         json.RawMessage `json:"name"`
	MaxKg        json.RawMessage `json:"maxKg"`
}

type weightConfig struct {
	Buckets []bucketConfig `json:"buckets"`
}

// NewRule creates a routing rule. The name may be empty (DisplayName falls
// back to the id); priority and version fall back to their defaults when
// zero-valued. A malformed weight config never fails construction: it yields
// a rule with no buckets, which the evaluator skips.
func NewRule(
	id kernel.UUID,
	name string,
	ruleType Type,
	priority int,
	config json.RawMessage,
) (*Rule, error) {
	return RestoreRule(id, name, ruleType, priority, DefaultVersion, config)
}

// RestoreRule reconstructs a Rule from persistence.
func RestoreRule(
	id kernel.UUID,
	name string,
	ruleType Type,
	priority int,
	version string,
	config json.RawMessage,
) (*Rule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if ruleType == "" {
		return nil, ErrTypeIsRequired
	}

	if version == "" {
		return nil, errs.NewVersionIsInvalidErrorWithCause("rule version")
	}

	if priority == 0 {
		priority = DefaultPriority
	}

	r := &Rule{
		id:            id,
		name:          name,
		ruleType:      ruleType,
		priority:      priority,
		version:       version,
		config:        config,
		isConstructed: true,
	}

	if ruleType == TypeWeight {
		r.buckets = parseBuckets(config)
	}

	return r, nil
}

// Validate ensures the Rule was created through a constructor.
func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}

	return nil
}

// IsEqual compares two rules by their unique identifiers.
func (r *Rule) IsEqual(other *Rule) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// Name returns the rule name, possibly empty.
func (r *Rule) Name() string {
	return r.name
}

// DisplayName returns the rule name, falling back to the id for unnamed rules.
// Used when recording applied rules in a routing outcome.
func (r *Rule) DisplayName() string {
	if r.name != "" {
		return r.name
	}
	return r.id.String()
}

// Type returns the rule type.
func (r *Rule) Type() Type {
	return r.ruleType
}

// IsWeight reports whether the rule is evaluated by the weight-bucket engine.
func (r *Rule) IsWeight() bool {
	return r.ruleType == TypeWeight
}

// Priority returns the evaluation priority; lower evaluates first.
func (r *Rule) Priority() int {
	return r.priority
}

// Version returns the rule version string.
func (r *Rule) Version() string {
	return r.version
}

// Config returns the raw configuration payload as stored.
func (r *Rule) Config() json.RawMessage {
	return r.config
}

// Buckets returns the parsed weight buckets in storage order.
// Empty for non-weight rules and for weight rules with unusable configs.
func (r *Rule) Buckets() []Bucket {
	buckets := make([]Bucket, len(r.buckets))
	copy(buckets, r.buckets)
	return buckets
}

// parseBuckets extracts weight buckets from a rule config. It is deliberately
// tolerant: unusable entries are dropped rather than reported, because a
// malformed rule must degrade to "no match", never to an evaluation error.
func parseBuckets(config json.RawMessage) []Bucket {
	if len(config) == 0 {
		return nil
	}

	var cfg weightConfig
	if err := json.Unmarshal(config, &cfg); err != nil {
		return nil
	}

	buckets := make([]Bucket, 0, len(cfg.Buckets))
	for _, bc := range cfg.Buckets {
		ref := firstStringValue(bc.DepartmentID, bc.Department, bc.DeptID, bc.Dept, bc.Name)
		b, err := NewBucket(ref, parseMaxKg(bc.MaxKg))
		if err != nil {
			continue
		}
		buckets = append(buckets, b)
	}

	return buckets
}

// firstStringValue returns the first raw JSON value that renders to a
// non-empty string, accepting both string and numeric JSON scalars.
func firstStringValue(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if len(raw) == 0 {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
			continue
		}

		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return ""
}

// parseMaxKg coerces a raw maxKg value to a float pointer.
// null, absence, empty strings, and unparsable values all yield nil, which
// Bucket treats as an unbounded catch-all ceiling.
func parseMaxKg(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(s), 64); parseErr == nil {
			return &parsed
		}
	}

	return nil
}
