package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrApproveInsuranceCommandIsNotConstructed = errors.New(
	"ApproveInsuranceCommand must be created via NewApproveInsuranceCommand constructor",
)

// ApproveInsuranceCommand represents an operator's decision to approve the
// insurance review of a pending parcel.
type ApproveInsuranceCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	approvedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveInsuranceCommand creates a command to approve a pending parcel.
// Validates both the parcel id and the approver id.
func NewApproveInsuranceCommand(parcelID, approvedBy kernel.UUID) (ApproveInsuranceCommand, error) {
	command := ApproveInsuranceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setApprovedBy(approvedBy),
	); err != nil {
		return ApproveInsuranceCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveInsuranceCommand) Validate() error {
	return c.guard.Validate(ErrApproveInsuranceCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel under review.
func (c ApproveInsuranceCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ApprovedBy returns the identifier of the approving operator.
func (c ApproveInsuranceCommand) ApprovedBy() kernel.UUID {
	return c.approvedBy
}

func (c *ApproveInsuranceCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ApproveInsuranceCommand) setApprovedBy(approvedBy kernel.UUID) error {
	if err := approvedBy.Validate(); err != nil {
		return err
	}

	c.approvedBy = approvedBy
	return nil
}
