package queries

import (
	"encoding/json"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetRulesQueryIsNotConstructed = errors.New(
	"GetRulesQuery must be created via NewGetRulesQuery constructor",
)

// GetRulesQuery retrieves all routing rules in evaluation order.
type GetRulesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetRulesQuery creates a query to retrieve all routing rules.
// This is a parameterless query.
func NewGetRulesQuery() GetRulesQuery {
	return GetRulesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRulesQuery) Validate() error {
	return q.guard.Validate(ErrGetRulesQueryIsNotConstructed)
}

// GetRulesQueryResponse represents one routing rule in the read model.
// Config is returned verbatim as stored.
type GetRulesQueryResponse struct {
	ID       kernel.UUID
	Name     string
	RuleType string
	Priority int
	Version  string
	Config   json.RawMessage
}
