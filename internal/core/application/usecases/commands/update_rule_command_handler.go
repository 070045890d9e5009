package commands

import (
	"context"
	"log/slog"

	"parcels/internal/core/domain/model/rule"
)

// UpdateRuleCommandHandler handles routing rule updates. The stored rule is
// replaced wholesale; weight configs go through the same normalization as
// creation, and a committed change to routing behaviour triggers the parcel
// re-evaluation cascade.
type UpdateRuleCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewUpdateRuleCommandHandler creates a handler for rule updates.
func NewUpdateRuleCommandHandler(uowFactory UoWFactory, logger *slog.Logger) UpdateRuleCommandHandler {
	return UpdateRuleCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the rule update command and returns the stored rule.
func (h UpdateRuleCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateRuleCommand,
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

	ruleRepo := uow.RuleRepository()

	existing, err := ruleRepo.Get(ctx, cmd.RuleID())
	if err != nil {
		return nil, err
	}

	version := cmd.Version()
	if version == "" {
		version = existing.Version()
	}

	submitted, err := rule.RestoreRule(
		cmd.RuleID(), cmd.Name(), cmd.RuleType(), cmd.Priority(), version, cmd.Config())
	if err != nil {
		return nil, err
	}

	routing := newRoutingServices(uow, 0)

	config, err := normalizeRuleConfig(ctx, routing.resolver, submitted)
	if err != nil {
		return nil, err
	}

	stored, err := rule.RestoreRule(
		cmd.RuleID(), cmd.Name(), cmd.RuleType(), cmd.Priority(), version, config)
	if err != nil {
		return nil, err
	}

	if err = ruleRepo.Update(ctx, stored); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if stored.IsWeight() || existing.IsWeight() {
		cascadeAfterRuleChange(ctx, h.uowFactory, h.logger, stored)
	}

	return stored, nil
}
