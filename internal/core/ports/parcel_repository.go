// Package ports defines repository interfaces for the parcel routing domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The parcel must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel by its tracking identifier.
	// Tracking ids are unique across all parcels.
	GetByTrackingID(ctx context.Context, trackingID string) (*parcel.Parcel, error)

	// GetAll retrieves every stored parcel.
	GetAll(ctx context.Context) ([]*parcel.Parcel, error)

	// GetAllRouted retrieves all parcels whose routing is settled, i.e. every
	// parcel not awaiting insurance approval. Used by rule-change cascades to
	// re-evaluate existing assignments.
	GetAllRouted(ctx context.Context) ([]*parcel.Parcel, error)

	// GetAllUnassigned retrieves parcels that have no department and are not
	// awaiting insurance approval. Used by the periodic routing sweep.
	GetAllUnassigned(ctx context.Context) ([]*parcel.Parcel, error)
}
