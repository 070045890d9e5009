package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// ApprovalStatus represents the insurance approval state of a parcel.
// It implements a state machine with defined transitions so parcels follow
// the manual approval workflow correctly.
//
// State transitions:
//
//	NotRequired                    (terminal)
//	Pending ──┬──> Approved        (terminal)
//	          └──> Rejected        (terminal)
//
// NotRequired is assigned during ingestion when the parcel value is at or
// below the insurance threshold. Pending is assigned when the value exceeds
// the threshold; only an external approval action moves a parcel out of it.
type ApprovalStatus int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized ApprovalStatus values.
	StatusUnknown ApprovalStatus = iota

	// StatusNotRequired indicates the parcel value did not exceed the
	// insurance threshold. Terminal.
	StatusNotRequired

	// StatusPending indicates the parcel is parked awaiting a manual
	// insurance decision. Pending parcels carry no department assignment.
	StatusPending

	// StatusApproved indicates an insurance agent approved the parcel. Terminal.
	StatusApproved

	// StatusRejected indicates an insurance agent rejected the parcel. Terminal.
	StatusRejected
)

// getStatusStrings returns the wire representation of every status.
func getStatusStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		StatusUnknown:     "unknown",
		StatusNotRequired: "not_required",
		StatusPending:     "pending",
		StatusApproved:    "approved",
		StatusRejected:    "rejected",
	}
}

// getValidStatusStrings returns only the statuses valid for a stored parcel.
func getValidStatusStrings() map[ApprovalStatus]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[ApprovalStatus]string{
		StatusNotRequired: "not_required",
		StatusPending:     "pending",
		StatusApproved:    "approved",
		StatusRejected:    "rejected",
	}
}

// Validate checks that the status is one of the closed set of valid states.
// StatusUnknown (0) and any other values are invalid.
func (s ApprovalStatus) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval status is invalid",
			fmt.Errorf("%d is not a valid approval status", s))
	}
	return nil
}

// String returns the wire name of the status ("not_required", "pending",
// "approved", "rejected"), or "unknown" for invalid values.
// Implements fmt.Stringer and is safe on any value.
func (s ApprovalStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Approve transitions the status to Approved.
//
// Valid transitions:
//   - Pending -> Approved
//
// All other transitions are invalid: NotRequired, Approved, and Rejected are
// terminal states.
func (s ApprovalStatus) Approve() (ApprovalStatus, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s.String()),
		)
	}

	return StatusApproved, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - Pending -> Rejected
func (s ApprovalStatus) Reject() (ApprovalStatus, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}

	return StatusRejected, nil
}

// ValidateCanHaveDepartment validates the consistency between approval status
// and department assignment. Pending parcels are parked before routing and
// must never carry a department.
func (s ApprovalStatus) ValidateCanHaveDepartment(hasDepartment bool) error {
	if hasDepartment && s == StatusPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"approval status is invalid",
			fmt.Errorf("%s is not a valid status to have a department", s.String()),
		)
	}

	return nil
}
