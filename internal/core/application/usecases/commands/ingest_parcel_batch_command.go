package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var (
	ErrIngestParcelBatchCommandIsNotConstructed = errors.New(
		"IngestParcelBatchCommand must be created via NewIngestParcelBatchCommand constructor",
	)
	ErrRecordsAreRequired = errors.New("at least one parcel record is required")
)

// IngestParcelBatchCommand represents a request to ingest a batch of parcel
// records, typically extracted from an uploaded document. Records are
// processed independently: one bad record never fails the batch.
type IngestParcelBatchCommand struct { //nolint:recvcheck //using for validation
	records []map[string]any

	guard guard.ConstructorGuard
}

// NewIngestParcelBatchCommand creates a command to ingest a batch of records.
// Validates that the batch is not empty.
func NewIngestParcelBatchCommand(records []map[string]any) (IngestParcelBatchCommand, error) {
	command := IngestParcelBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if len(records) == 0 {
		return IngestParcelBatchCommand{}, ErrRecordsAreRequired
	}

	command.records = records
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestParcelBatchCommand) Validate() error {
	return c.guard.Validate(ErrIngestParcelBatchCommandIsNotConstructed)
}

// Records returns the raw parcel records in upload order.
func (c IngestParcelBatchCommand) Records() []map[string]any {
	return c.records
}
