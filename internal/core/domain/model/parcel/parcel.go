package parcel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

	// ErrTrackingIDIsRequired is returned when a parcel is constructed
	// without a tracking identifier.
	ErrTrackingIDIsRequired = errors.New("tracking ID is required")
)

// Parcel represents a physical parcel flowing through the routing pipeline.
// It is the aggregate root that manages the parcel lifecycle from ingestion
// through insurance gating to department assignment.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and a non-empty tracking ID
//   - Tracking IDs are unique across all stored parcels (enforced by storage)
//   - Weight and value, when present, are finite numbers
//   - A parcel pending insurance approval never carries a department
//   - Approval status transitions follow the closed state machine in ApprovalStatus
type Parcel struct {
	id kernel.UUID

	// trackingID is the external identifier, caller-supplied or synthetic
	trackingID string

	// weightKg and valueEur are optional; nil means the source record had
	// no usable value for the field
	weightKg *float64
	valueEur *float64

	destination string

	// rawSource preserves the original payload verbatim for audit
	rawSource string

	// departmentID is the assigned handling department (nil if unrouted)
	departmentID *kernel.UUID

	approvalStatus ApprovalStatus
	approvedBy     *kernel.UUID
	approvedAt     *time.Time

	isConstructed bool
}

// NewParcel creates a new Parcel from normalized draft data.
// The parcel starts without an approval status; the ingestion flow must call
// either RequireInsurance or MarkInsuranceNotRequired before persisting it.
//
// weightKg and valueEur may be nil. When present they must be finite.
func NewParcel(
	id kernel.UUID,
	trackingID string,
	weightKg *float64,
	valueEur *float64,
	destination string,
	rawSource string,
) (*Parcel, error) {
	p := &Parcel{
		destination:   destination,
		rawSource:     rawSource,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setWeightKg(weightKg),
		p.setValueEur(valueEur),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a Parcel from persistence.
// Validates the stored approval status and the status/department consistency
// rule (a pending parcel must not carry a department).
func RestoreParcel(
	id kernel.UUID,
	trackingID string,
	weightKg *float64,
	valueEur *float64,
	destination string,
	rawSource string,
	departmentID *kernel.UUID,
	status ApprovalStatus,
	approvedBy *kernel.UUID,
	approvedAt *time.Time,
) (*Parcel, error) {
	p, err := NewParcel(id, trackingID, weightKg, valueEur, destination, rawSource)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = status.ValidateCanHaveDepartment(departmentID != nil); err != nil {
		return nil, err
	}

	if departmentID != nil {
		if err = departmentID.Validate(); err != nil {
			return nil, err
		}
	}

	if approvedBy != nil {
		if err = approvedBy.Validate(); err != nil {
			return nil, err
		}
	}

	p.departmentID = departmentID
	p.approvalStatus = status
	p.approvedBy = approvedBy
	p.approvedAt = approvedAt
	return p, nil
}

// Validate ensures the Parcel was properly constructed through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}

	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingID returns the external tracking identifier.
func (p *Parcel) TrackingID() string {
	return p.trackingID
}

// WeightKg returns the parcel weight in kilograms, or nil if unknown.
func (p *Parcel) WeightKg() *float64 {
	return p.weightKg
}

// ValueEur returns the declared parcel value in euros, or nil if unknown.
func (p *Parcel) ValueEur() *float64 {
	return p.valueEur
}

// Destination returns the destination string, possibly empty.
func (p *Parcel) Destination() string {
	return p.destination
}

// RawSource returns the original input payload retained for audit.
func (p *Parcel) RawSource() string {
	return p.rawSource
}

// Department returns the assigned department's ID.
// Returns nil if the parcel is unrouted.
func (p *Parcel) Department() *kernel.UUID {
	return p.departmentID
}

// ApprovalStatus returns the current insurance approval status.
func (p *Parcel) ApprovalStatus() ApprovalStatus {
	return p.approvalStatus
}

// ApprovedBy returns the identity that decided the insurance approval, if any.
func (p *Parcel) ApprovedBy() *kernel.UUID {
	return p.approvedBy
}

// ApprovedAt returns the time of the insurance decision, if any.
func (p *Parcel) ApprovedAt() *time.Time {
	return p.approvedAt
}

// RequireInsurance parks the parcel in the pending approval state.
// Only valid for a freshly constructed parcel that has no approval state yet;
// routing is skipped entirely for pending parcels.
func (p *Parcel) RequireInsurance() error {
	if p.approvalStatus != StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s parcel cannot be re-gated", p.approvalStatus.String()),
		)
	}

	p.approvalStatus = StatusPending
	return nil
}

// MarkInsuranceNotRequired records that the parcel value did not exceed the
// insurance threshold. Only valid for a freshly constructed parcel.
func (p *Parcel) MarkInsuranceNotRequired() error {
	if p.approvalStatus != StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s parcel cannot be re-gated", p.approvalStatus.String()),
		)
	}

	p.approvalStatus = StatusNotRequired
	return nil
}

// ApproveInsurance transitions a pending parcel to approved and records who
// decided and when. Department assignment happens separately, after approval.
func (p *Parcel) ApproveInsurance(by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}

	newStatus, err := p.approvalStatus.Approve()
	if err != nil {
		return err
	}

	p.approvalStatus = newStatus
	p.approvedBy = &by
	p.approvedAt = &at
	return nil
}

// RejectInsurance transitions a pending parcel to rejected and records who
// decided and when. A rejected parcel keeps no department and is not routed
// any further.
func (p *Parcel) RejectInsurance(by kernel.UUID, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}

	newStatus, err := p.approvalStatus.Reject()
	if err != nil {
		return err
	}

	p.approvalStatus = newStatus
	p.approvedBy = &by
	p.approvedAt = &at
	return nil
}

// AssignDepartment routes the parcel to a handling department.
// Reassignment is allowed (the rule-change cascade overwrites assignments),
// but a parcel pending insurance approval can never be assigned.
func (p *Parcel) AssignDepartment(departmentID kernel.UUID) error {
	if err := departmentID.Validate(); err != nil {
		return err
	}

	if err := p.approvalStatus.ValidateCanHaveDepartment(true); err != nil {
		return err
	}

	p.departmentID = &departmentID
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingID(trackingID string) error {
	if trackingID == "" {
		return ErrTrackingIDIsRequired
	}
	p.trackingID = trackingID
	return nil
}

func (p *Parcel) setWeightKg(weightKg *float64) error {
	if weightKg != nil && (math.IsNaN(*weightKg) || math.IsInf(*weightKg, 0)) {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not a finite number", *weightKg))
	}
	p.weightKg = weightKg
	return nil
}

func (p *Parcel) setValueEur(valueEur *float64) error {
	if valueEur != nil && (math.IsNaN(*valueEur) || math.IsInf(*valueEur, 0)) {
		return errs.NewValueIsInvalidErrorWithCause("valueEur",
			fmt.Errorf("%v is not a finite number", *valueEur))
	}
	p.valueEur = valueEur
	return nil
}
