package commands

import (
	"encoding/json"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/pkg/guard"
)

var (
	ErrCreateRuleCommandIsNotConstructed = errors.New(
		"CreateRuleCommand must be created via NewCreateRuleCommand constructor",
	)
	ErrRuleTypeIsRequired = errors.New("rule type is required")
)

// CreateRuleCommand represents a request to register a routing rule.
// The config payload is type-specific; for weight rules it carries the
// bucket array, which the handler normalizes before persisting.
type CreateRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID   kernel.UUID
	name     string
	ruleType rule.Type
	priority int
	config   json.RawMessage

	guard guard.ConstructorGuard
}

// NewCreateRuleCommand creates a command to register a routing rule.
// Validates the rule id and that a type is present; name, priority, and
// config may be empty, with domain defaults applied during handling.
func NewCreateRuleCommand(
	ruleID kernel.UUID,
	name string,
	ruleType rule.Type,
	priority int,
	config json.RawMessage,
) (CreateRuleCommand, error) {
	command := CreateRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRuleID(ruleID),
		command.setRuleType(ruleType),
	); err != nil {
		return CreateRuleCommand{}, err
	}

	command.name = name
	command.priority = priority
	command.config = config
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRuleCommand) Validate() error {
	return c.guard.Validate(ErrCreateRuleCommandIsNotConstructed)
}

// RuleID returns the unique identifier for the rule.
func (c CreateRuleCommand) RuleID() kernel.UUID {
	return c.ruleID
}

// Name returns the rule name, possibly empty.
func (c CreateRuleCommand) Name() string {
	return c.name
}

// RuleType returns the rule type.
func (c CreateRuleCommand) RuleType() rule.Type {
	return c.ruleType
}

// Priority returns the requested priority; zero means the domain default.
func (c CreateRuleCommand) Priority() int {
	return c.priority
}

// Config returns the raw rule configuration.
func (c CreateRuleCommand) Config() json.RawMessage {
	return c.config
}

func (c *CreateRuleCommand) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return err
	}

	c.ruleID = ruleID
	return nil
}

func (c *CreateRuleCommand) setRuleType(ruleType rule.Type) error {
	if ruleType == "" {
		return ErrRuleTypeIsRequired
	}

	c.ruleType = ruleType
	return nil
}
