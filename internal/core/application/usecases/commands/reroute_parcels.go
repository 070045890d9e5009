package commands

import (
	"context"
	"log/slog"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// rerouteRoutedParcels re-evaluates every routed parcel against the current
// rule set after a rule change. A parcel whose evaluation produces a new
// department is reassigned; a parcel no rule matches keeps its current
// assignment. Per-parcel failures are logged and skipped so one broken parcel
// cannot stall the cascade.
//
// Runs in its own transaction, after the rule change has committed. A cascade
// failure therefore never rolls back the rule itself.
func rerouteRoutedParcels(
	ctx context.Context,
	uowFactory UoWFactory,
	logger *slog.Logger,
) (int, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	parcels, err := parcelRepo.GetAllRouted(ctx)
	if err != nil {
		return 0, err
	}

	rules, err := uow.RuleRepository().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	routing := newRoutingServices(uow, 0)
	evaluator := routing.assigner.Evaluator()

	changed := 0
	for _, p := range parcels {
		outcome := evaluator.Evaluate(ctx, p.WeightKg(), p.ValueEur(), rules)
		if n, ok := reassignParcel(ctx, parcelRepo, p, outcome, logger); ok {
			changed += n
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}

// reassignParcel applies an outcome to one parcel and persists it.
// Returns (1, true) when the parcel moved, (0, true) when it stayed put, and
// (0, false) when the parcel had to be skipped.
func reassignParcel(
	ctx context.Context,
	parcelRepo ports.ParcelRepository,
	p *parcel.Parcel,
	outcome services.RoutingOutcome,
	logger *slog.Logger,
) (int, bool) {
	applied, err := applyOutcome(p, outcome)
	if err != nil {
		logger.Warn("skipping parcel during re-evaluation",
			"parcelId", p.ID().String(),
			"error", err)
		return 0, false
	}
	if !applied {
		return 0, true
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		logger.Warn("failed to persist re-evaluated parcel",
			"parcelId", p.ID().String(),
			"error", err)
		return 0, false
	}

	return 1, true
}

// cascadeAfterRuleChange runs the re-evaluation cascade for a changed rule,
// logging the result. Cascade failures are reported but deliberately not
// returned: the rule change itself already succeeded.
func cascadeAfterRuleChange(
	ctx context.Context,
	uowFactory UoWFactory,
	logger *slog.Logger,
	changedRule *rule.Rule,
) {
	changed, err := rerouteRoutedParcels(ctx, uowFactory, logger)
	if err != nil {
		logger.Error("parcel re-evaluation after rule change failed",
			"ruleId", changedRule.ID().String(),
			"error", err)
		return
	}

	logger.Info("re-evaluated parcels after rule change",
		"ruleId", changedRule.ID().String(),
		"reassigned", changed)
}
