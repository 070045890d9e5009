// Package rulerepo provides data transfer objects and mapping functions for
// routing rule persistence.
package rulerepo

import (
	"encoding/json"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"

	"github.com/google/uuid"
)

// RuleDTO represents the database structure for persisting routing rules.
// The config payload is stored verbatim as jsonb so rule types this service
// does not evaluate survive a round-trip untouched.
type RuleDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	RuleType string `gorm:"index"`
	Priority int    `gorm:"index"`
	Version  string
	Config   []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for rule entities.
func (RuleDTO) TableName() string {
	return "rules"
}

// fromDomain converts a rule domain aggregate to its database representation.
func fromDomain(aggregate *rule.Rule) RuleDTO {
	return RuleDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		RuleType: string(aggregate.Type()),
		Priority: aggregate.Priority(),
		Version:  aggregate.Version(),
		Config:   aggregate.Config(),
	}
}

// toDomain converts a database DTO to a rule domain aggregate.
func toDomain(dto RuleDTO) (*rule.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return rule.RestoreRule(
		id,
		dto.Name,
		rule.Type(dto.RuleType),
		dto.Priority,
		dto.Version,
		json.RawMessage(dto.Config),
	)
}
