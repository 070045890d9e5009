package commands

import (
	"context"
	"log/slog"
)

// RouteUnassignedParcelsCommandHandler runs the periodic routing sweep:
// every unassigned, non-pending parcel is pushed through the rule set and the
// static default chain. Parcels that still resolve to nothing stay unassigned
// until the next sweep or rule change.
type RouteUnassignedParcelsCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewRouteUnassignedParcelsCommandHandler creates a handler for the routing sweep.
func NewRouteUnassignedParcelsCommandHandler(
	uowFactory UoWFactory,
	logger *slog.Logger,
) RouteUnassignedParcelsCommandHandler {
	return RouteUnassignedParcelsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle runs one sweep and returns the number of parcels assigned.
func (h RouteUnassignedParcelsCommandHandler) Handle(
	ctx context.Context,
	cmd RouteUnassignedParcelsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	parcels, err := parcelRepo.GetAllUnassigned(ctx)
	if err != nil {
		return 0, err
	}
	if len(parcels) == 0 {
		return 0, nil
	}

	rules, err := uow.RuleRepository().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	routing := newRoutingServices(uow, 0)
	evaluator := routing.assigner.Evaluator()

	assigned := 0
	for _, p := range parcels {
		outcome := evaluator.Evaluate(ctx, p.WeightKg(), p.ValueEur(), rules)
		if outcome.AssignedDepartment == nil {
			outcome = routing.assigner.ResolveDefault(ctx, p.WeightKg())
		}

		if n, ok := reassignParcel(ctx, parcelRepo, p, outcome, h.logger); ok {
			assigned += n
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return assigned, nil
}
