package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// ApproveInsuranceCommandHandler handles insurance approval of pending
// parcels.
//
// Approval deliberately applies only the static per-weight default
// department; routing rules are not re-consulted. A parcel held for insurance
// review gets the predictable fallback assignment, and the next rule-change
// cascade or routing sweep can still move it later.
type ApproveInsuranceCommandHandler struct {
	uowFactory UoWFactory
}

// NewApproveInsuranceCommandHandler creates a handler for insurance approval.
func NewApproveInsuranceCommandHandler(uowFactory UoWFactory) ApproveInsuranceCommandHandler {
	return ApproveInsuranceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle approves the parcel's insurance review and applies the default
// assignment. Returns the updated parcel.
func (h ApproveInsuranceCommandHandler) Handle(
	ctx context.Context,
	cmd ApproveInsuranceCommand,
) (*parcel.Parcel, error) {
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

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = p.ApproveInsurance(cmd.ApprovedBy(), time.Now().UTC()); err != nil {
		return nil, err
	}

	routing := newRoutingServices(uow, 0)
	outcome := routing.assigner.ResolveDefault(ctx, p.WeightKg())
	if _, err = applyOutcome(p, outcome); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
