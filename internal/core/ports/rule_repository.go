package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"
)

// RuleRepository defines the persistence contract for routing rule aggregates.
type RuleRepository interface {
	// Add persists a new rule aggregate to storage.
	Add(ctx context.Context, aggregate *rule.Rule) error

	// Update persists changes to an existing rule aggregate.
	Update(ctx context.Context, aggregate *rule.Rule) error

	// Get retrieves a rule aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rule.Rule, error)

	// GetAll retrieves every stored rule, ordered by ascending priority.
	GetAll(ctx context.Context) ([]*rule.Rule, error)
}
