package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// RejectInsuranceCommandHandler handles insurance rejection of pending
// parcels. A rejected parcel keeps no department assignment.
type RejectInsuranceCommandHandler struct {
	uowFactory UoWFactory
}

// NewRejectInsuranceCommandHandler creates a handler for insurance rejection.
func NewRejectInsuranceCommandHandler(uowFactory UoWFactory) RejectInsuranceCommandHandler {
	return RejectInsuranceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle rejects the parcel's insurance review and returns the updated parcel.
func (h RejectInsuranceCommandHandler) Handle(
	ctx context.Context,
	cmd RejectInsuranceCommand,
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

	if err = p.RejectInsurance(cmd.RejectedBy(), time.Now().UTC()); err != nil {
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
