package commands

import (
	"encoding/json"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/pkg/guard"
)

var ErrUpdateRuleCommandIsNotConstructed = errors.New(
	"UpdateRuleCommand must be created via NewUpdateRuleCommand constructor",
)

// UpdateRuleCommand represents a request to replace an existing routing
// rule's definition. The version is optional; when empty the stored version
// is kept.
type UpdateRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID   kernel.UUID
	name     string
	ruleType rule.Type
	priority int
	version  string
	config   json.RawMessage

	guard guard.ConstructorGuard
}

// NewUpdateRuleCommand creates a command to update a routing rule.
// Validates the rule id and that a type is present.
func NewUpdateRuleCommand(
	ruleID kernel.UUID,
	name string,
	ruleType rule.Type,
	priority int,
	version string,
	config json.RawMessage,
) (UpdateRuleCommand, error) {
	command := UpdateRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRuleID(ruleID); err != nil {
		return UpdateRuleCommand{}, err
	}

	if ruleType == "" {
		return UpdateRuleCommand{}, ErrRuleTypeIsRequired
	}

	command.name = name
	command.ruleType = ruleType
	command.priority = priority
	command.version = version
	command.config = config
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRuleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRuleCommandIsNotConstructed)
}

// RuleID returns the identifier of the rule to update.
func (c UpdateRuleCommand) RuleID() kernel.UUID {
	return c.ruleID
}

// Name returns the new rule name, possibly empty.
func (c UpdateRuleCommand) Name() string {
	return c.name
}

// RuleType returns the new rule type.
func (c UpdateRuleCommand) RuleType() rule.Type {
	return c.ruleType
}

// Priority returns the new priority; zero means the domain default.
func (c UpdateRuleCommand) Priority() int {
	return c.priority
}

// Version returns the new version; empty keeps the stored version.
func (c UpdateRuleCommand) Version() string {
	return c.version
}

// Config returns the new raw rule configuration.
func (c UpdateRuleCommand) Config() json.RawMessage {
	return c.config
}

func (c *UpdateRuleCommand) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return err
	}

	c.ruleID = ruleID
	return nil
}
