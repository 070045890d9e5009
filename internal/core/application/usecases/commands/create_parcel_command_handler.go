package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// ErrDuplicateTrackingID is returned when a parcel with the same tracking id
// is already stored. Callers map it to a conflict response.
var ErrDuplicateTrackingID = errors.New("parcel with this tracking id already exists")

// CreateParcelCommandHandler handles single-parcel ingestion: normalization,
// duplicate detection, insurance gating, and department assignment happen in
// one transaction.
type CreateParcelCommandHandler struct {
	uowFactory            UoWFactory
	insuranceThresholdEur float64
}

// NewCreateParcelCommandHandler creates a handler for parcel ingestion.
// The threshold is the insurance gate in euros; non-positive values fall back
// to the default.
func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	insuranceThresholdEur float64,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory:            uowFactory,
		insuranceThresholdEur: insuranceThresholdEur,
	}
}

// Handle processes the parcel ingestion command and returns the stored parcel.
// A record whose tracking id is already known yields ErrDuplicateTrackingID.
func (h CreateParcelCommandHandler) Handle(
	ctx context.Context,
	cmd CreateParcelCommand,
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

	routing := newRoutingServices(uow, h.insuranceThresholdEur)
	parcelRepo := uow.ParcelRepository()

	draft := routing.normalizer.Normalize(cmd.Record())

	existing, err := parcelRepo.GetByTrackingID(ctx, draft.TrackingID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateTrackingID
	}

	rules, err := uow.RuleRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	outcome := routing.assigner.Resolve(ctx, draft, rules)

	p, err := buildParcel(cmd.ParcelID(), draft, outcome)
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
