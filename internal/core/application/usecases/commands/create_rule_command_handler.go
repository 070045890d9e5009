package commands

import (
	"context"
	"log/slog"

	"parcels/internal/core/domain/model/rule"
)

// CreateRuleCommandHandler handles routing rule registration.
//
// Weight rule configs are normalized before persisting: every bucket's
// department reference is resolved and rewritten to the canonical department
// id, and an unresolvable reference fails the command. After a weight rule is
// committed, all routed parcels are re-evaluated against the new rule set.
type CreateRuleCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewCreateRuleCommandHandler creates a handler for rule registration.
// The logger reports re-evaluation cascades.
func NewCreateRuleCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateRuleCommandHandler {
	return CreateRuleCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the rule registration command and returns the stored rule.
func (h CreateRuleCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRuleCommand,
) (*rule.Rule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	submitted, err := rule.NewRule(cmd.RuleID(), cmd.Name(), cmd.RuleType(), cmd.Priority(), cmd.Config())
	if err != nil {
		return nil, err
	}

	routing := newRoutingServices(uow, 0)

	config, err := normalizeRuleConfig(ctx, routing.resolver, submitted)
	if err != nil {
		return nil, err
	}

	stored, err := rule.NewRule(cmd.RuleID(), cmd.Name(), cmd.RuleType(), cmd.Priority(), config)
	if err != nil {
		return nil, err
	}

	if err = uow.RuleRepository().Add(ctx, stored); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if stored.IsWeight() {
		cascadeAfterRuleChange(ctx, h.uowFactory, h.logger, stored)
	}

	return stored, nil
}
