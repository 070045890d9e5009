package queries

import (
	"context"
	"database/sql"

	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDepartmentsQueryHandler retrieves department read models from the database.
type GetDepartmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetDepartmentsQueryHandler creates a handler for department retrieval queries.
func NewGetDepartmentsQueryHandler(db *gorm.DB) GetDepartmentsQueryHandler {
	return GetDepartmentsQueryHandler{db: db}
}

// Handle executes the query and returns departments ordered by name.
func (h GetDepartmentsQueryHandler) Handle(
	ctx context.Context,
	query GetDepartmentsQuery,
) ([]GetDepartmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	departments := make([]GetDepartmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description
		FROM departments
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetDepartmentsQueryResponse
		var id uuid.UUID
		var description sql.NullString

		if err = rows.Scan(&id, &response.Name, &description); err != nil {
			return nil, err
		}

		departmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = departmentID

		if description.Valid {
			response.Description = description.String
		}

		departments = append(departments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}
