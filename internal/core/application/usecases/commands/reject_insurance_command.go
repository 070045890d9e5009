package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrRejectInsuranceCommandIsNotConstructed = errors.New(
	"RejectInsuranceCommand must be created via NewRejectInsuranceCommand constructor",
)

// RejectInsuranceCommand represents an operator's decision to reject the
// insurance review of a pending parcel.
type RejectInsuranceCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	rejectedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectInsuranceCommand creates a command to reject a pending parcel.
// Validates both the parcel id and the reviewer id.
func NewRejectInsuranceCommand(parcelID, rejectedBy kernel.UUID) (RejectInsuranceCommand, error) {
	command := RejectInsuranceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setRejectedBy(rejectedBy),
	); err != nil {
		return RejectInsuranceCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectInsuranceCommand) Validate() error {
	return c.guard.Validate(ErrRejectInsuranceCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel under review.
func (c RejectInsuranceCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// RejectedBy returns the identifier of the rejecting operator.
func (c RejectInsuranceCommand) RejectedBy() kernel.UUID {
	return c.rejectedBy
}

func (c *RejectInsuranceCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RejectInsuranceCommand) setRejectedBy(rejectedBy kernel.UUID) error {
	if err := rejectedBy.Validate(); err != nil {
		return err
	}

	c.rejectedBy = rejectedBy
	return nil
}
