package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrRecordIsRequired = errors.New("parcel record is required")
)

// CreateParcelCommand represents a request to ingest a single parcel record.
// The record is a raw key-value document as received from an upstream system;
// field normalization happens during handling, not here.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	record   map[string]any

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to ingest one parcel record.
// Validates that the parcel id is valid and the record is not empty.
func NewCreateParcelCommand(parcelID kernel.UUID, record map[string]any) (CreateParcelCommand, error) {
	command := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setRecord(record),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier assigned to the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Record returns the raw parcel record.
func (c CreateParcelCommand) Record() map[string]any {
	return c.record
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setRecord(record map[string]any) error {
	if len(record) == 0 {
		return ErrRecordIsRequired
	}

	c.record = record
	return nil
}
