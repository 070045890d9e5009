package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRulesQueryHandler retrieves routing rule read models from the database.
type GetRulesQueryHandler struct {
	db *gorm.DB
}

// NewGetRulesQueryHandler creates a handler for rule retrieval queries.
func NewGetRulesQueryHandler(db *gorm.DB) GetRulesQueryHandler {
	return GetRulesQueryHandler{db: db}
}

// Handle executes the query and returns rules in ascending priority order,
// the same order the evaluator applies them.
func (h GetRulesQueryHandler) Handle(
	ctx context.Context,
	query GetRulesQuery,
) ([]GetRulesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rules := make([]GetRulesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			rule_type,
			priority,
			version,
			config
		FROM rules
		ORDER BY priority, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetRulesQueryResponse
		var id uuid.UUID
		var name sql.NullString
		var config []byte

		if err = rows.Scan(
			&id,
			&name,
			&response.RuleType,
			&response.Priority,
			&response.Version,
			&config,
		); err != nil {
			return nil, err
		}

		ruleID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = ruleID

		if name.Valid {
			response.Name = name.String
		}
		if len(config) > 0 {
			response.Config = json.RawMessage(config)
		}

		rules = append(rules, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}
