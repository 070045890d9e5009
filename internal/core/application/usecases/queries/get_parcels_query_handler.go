package queries

import (
	"context"
	"database/sql"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelsQueryHandler retrieves parcel read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelsQueryHandler creates a handler for parcel retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetParcelsQueryHandler(db *gorm.DB) GetParcelsQueryHandler {
	return GetParcelsQueryHandler{db: db}
}

// Handle executes the query and returns parcels ordered by tracking id.
// A department filter that parses as a UUID matches the department id;
// anything else matches the department name case-insensitively.
func (h GetParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetParcelsQuery,
) ([]GetParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			p.id,
			p.tracking_id,
			p.weight_kg,
			p.value_eur,
			p.destination,
			p.department_id,
			p.approval_status,
			p.approved_by,
			p.approved_at
		FROM parcels p
	`

	var rows *sql.Rows
	var err error

	switch {
	case query.DepartmentRef() == "":
		rows, err = h.db.WithContext(ctx).Raw(baseQuery + ` ORDER BY p.tracking_id`).Rows()
	default:
		if deptID, parseErr := uuid.Parse(query.DepartmentRef()); parseErr == nil {
			rows, err = h.db.WithContext(ctx).Raw(
				baseQuery+` WHERE p.department_id = ? ORDER BY p.tracking_id`, deptID).Rows()
		} else {
			rows, err = h.db.WithContext(ctx).Raw(
				baseQuery+`
				JOIN departments d ON d.id = p.department_id
				WHERE lower(d.name) = lower(?)
				ORDER BY p.tracking_id`, query.DepartmentRef()).Rows()
		}
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]GetParcelsQueryResponse, 0)

	for rows.Next() {
		response, scanErr := scanParcelRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		parcels = append(parcels, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}

func scanParcelRow(rows *sql.Rows) (GetParcelsQueryResponse, error) {
	var response GetParcelsQueryResponse
	var id uuid.UUID
	var weightKg, valueEur sql.NullFloat64
	var destination sql.NullString
	var departmentID, approvedBy uuid.NullUUID
	var approvalStatus int
	var approvedAt sql.NullTime

	err := rows.Scan(
		&id,
		&response.TrackingID,
		&weightKg,
		&valueEur,
		&destination,
		&departmentID,
		&approvalStatus,
		&approvedBy,
		&approvedAt,
	)
	if err != nil {
		return GetParcelsQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetParcelsQueryResponse{}, err
	}
	response.ID = parcelID

	if weightKg.Valid {
		response.WeightKg = &weightKg.Float64
	}
	if valueEur.Valid {
		response.ValueEur = &valueEur.Float64
	}
	if destination.Valid {
		response.Destination = destination.String
	}
	if departmentID.Valid {
		deptID, idErr := kernel.UUIDFromBytes(departmentID.UUID[:])
		if idErr != nil {
			return GetParcelsQueryResponse{}, idErr
		}
		response.DepartmentID = &deptID
	}
	if approvedBy.Valid {
		byID, idErr := kernel.UUIDFromBytes(approvedBy.UUID[:])
		if idErr != nil {
			return GetParcelsQueryResponse{}, idErr
		}
		response.ApprovedBy = &byID
	}
	if approvedAt.Valid {
		response.ApprovedAt = &approvedAt.Time
	}

	response.ApprovalStatus = parcel.ApprovalStatus(approvalStatus).String()
	return response, nil
}
