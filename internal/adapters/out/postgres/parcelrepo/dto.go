// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. This package implements the repository pattern for the
// parcel domain aggregate, handling the conversion between domain entities and
// database representations.
package parcelrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The tracking id carries a unique index: it is the ingestion-level identity
// of a parcel and the backstop against duplicate uploads.
type ParcelDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID     string     `gorm:"uniqueIndex"`
	WeightKg       *float64   `gorm:"type:double precision"`
	ValueEur       *float64   `gorm:"type:double precision"`
	Destination    string
	RawSource      string     `gorm:"type:text"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	ApprovalStatus int        `gorm:"index"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var departmentID *uuid.UUID
	if id := aggregate.Department(); id != nil {
		raw := id.Bytes()
		departmentID = &raw
	}

	var approvedBy *uuid.UUID
	if id := aggregate.ApprovedBy(); id != nil {
		raw := id.Bytes()
		approvedBy = &raw
	}

	return ParcelDTO{
		ID:             aggregate.ID().Bytes(),
		TrackingID:     aggregate.TrackingID(),
		WeightKg:       aggregate.WeightKg(),
		ValueEur:       aggregate.ValueEur(),
		Destination:    aggregate.Destination(),
		RawSource:      aggregate.RawSource(),
		DepartmentID:   departmentID,
		ApprovalStatus: int(aggregate.ApprovalStatus()),
		ApprovedBy:     approvedBy,
		ApprovedAt:     aggregate.ApprovedAt(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate using
// RestoreParcel, which re-validates the stored state.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var departmentID *kernel.UUID
	if dto.DepartmentID != nil {
		deptID, deptErr := kernel.UUIDFromBytes((*dto.DepartmentID)[:])
		if deptErr != nil {
			return nil, deptErr
		}

		departmentID = &deptID
	}

	var approvedBy *kernel.UUID
	if dto.ApprovedBy != nil {
		byID, byErr := kernel.UUIDFromBytes((*dto.ApprovedBy)[:])
		if byErr != nil {
			return nil, byErr
		}

		approvedBy = &byID
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingID,
		dto.WeightKg,
		dto.ValueEur,
		dto.Destination,
		dto.RawSource,
		departmentID,
		parcel.ApprovalStatus(dto.ApprovalStatus),
		approvedBy,
		dto.ApprovedAt,
	)
}
