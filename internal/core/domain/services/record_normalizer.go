package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParcelDraft is an in-memory, not-yet-persisted normalized parcel record
// produced by RecordNormalizer. Weight and value are nil when the source
// record had no usable number for the field.
type ParcelDraft struct {
	TrackingID  string
	WeightKg    *float64
	ValueEur    *float64
	Destination string

	// ExplicitDepartment is a department reference named directly by the
	// input record; when resolvable it wins over rule evaluation.
	ExplicitDepartment string

	// RawSource preserves the original record verbatim for audit.
	RawSource string
}

// Field alias tables. Records arrive with heterogeneous key casing from
// different upstream systems; the accepted variants are finite and explicit,
// resolved in order. Keys are matched case-sensitively.
var (
	trackingIDAliases  = []string{"trackingId", "TrackingId", "tracking", "id"}
	weightAliases      = []string{"weightKg", "Weight", "weight"}
	valueAliases       = []string{"valueEur", "Value", "value"}
	destinationAliases = []string{"destination", "Destination"}
	departmentAliases  = []string{"assignedDepartment"}
)

// RecordNormalizer maps an arbitrarily-shaped key-value record into a
// canonical ParcelDraft. It is a pure domain service: no I/O, no validation
// errors. Unusable field values are left unset rather than rejected.
type RecordNormalizer struct{}

// NewRecordNormalizer creates a new RecordNormalizer instance.
func NewRecordNormalizer() RecordNormalizer {
	return RecordNormalizer{}
}

// Normalize builds a ParcelDraft from a raw record.
//
// The tracking id is taken from the first present alias; if none yields a
// value, a synthetic identifier derived from the current nanosecond clock is
// generated. The synthetic strategy has a theoretical collision window under
// concurrent ingestion; storage-level uniqueness on the tracking id is the
// backstop.
func (RecordNormalizer) Normalize(record map[string]any) ParcelDraft {
	draft := ParcelDraft{
		TrackingID:         firstString(record, trackingIDAliases),
		WeightKg:           firstNumber(record, weightAliases),
		ValueEur:           firstNumber(record, valueAliases),
		Destination:        firstString(record, destinationAliases),
		ExplicitDepartment: firstString(record, departmentAliases),
	}

	if draft.TrackingID == "" {
		draft.TrackingID = syntheticTrackingID()
	}

	if raw, err := json.Marshal(record); err == nil {
		draft.RawSource = string(raw)
	}

	return draft
}

// TrackingID determines the tracking id for a record without building a full
// draft, for duplicate checks ahead of normalization. Returns an empty string
// when no alias is present (the record would receive a synthetic id).
func (RecordNormalizer) TrackingID(record map[string]any) string {
	return firstString(record, trackingIDAliases)
}

func syntheticTrackingID() string {
	return fmt.Sprintf("auto-%d", time.Now().UnixNano())
}

// firstString returns the first alias value that renders to a non-empty
// string. Numeric values are accepted and formatted, since upstream systems
// occasionally send numeric identifiers.
func firstString(record map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := record[key]
		if !ok {
			continue
		}

		switch value := v.(type) {
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64)
		case int:
			return strconv.Itoa(value)
		}
	}
	return ""
}

// firstNumber coerces the first present alias value to a finite float.
// A present-but-uncoercible value leaves the field unset: not zero, not an
// error.
func firstNumber(record map[string]any, aliases []string) *float64 {
	for _, key := range aliases {
		v, ok := record[key]
		if !ok {
			continue
		}

		var n float64
		switch value := v.(type) {
		case float64:
			n = value
		case int:
			n = float64(value)
		case json.Number:
			parsed, err := value.Float64()
			if err != nil {
				return nil
			}
			n = parsed
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil
			}
			n = parsed
		default:
			return nil
		}

		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	}
	return nil
}
