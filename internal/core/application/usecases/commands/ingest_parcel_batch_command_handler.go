package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/pkg/errs"
)

// BatchResult summarises a batch ingestion: every record lands in exactly one
// of the three outcome groups.
type BatchResult struct {
	Total      int
	Created    []*parcel.Parcel
	Duplicates []DuplicateRecord
	Failed     []FailedRecord
}

// DuplicateRecord identifies a record whose tracking id already exists.
type DuplicateRecord struct {
	TrackingID string
	ExistingID kernel.UUID
}

// FailedRecord pairs a rejected record with the error that rejected it.
type FailedRecord struct {
	Record map[string]any
	Err    error
}

// IngestParcelBatchCommandHandler handles batch parcel ingestion.
//
// The rule set is loaded once for the whole batch; each record is then
// ingested in its own transaction so a storage failure on one record cannot
// roll back its predecessors.
type IngestParcelBatchCommandHandler struct {
	uowFactory            UoWFactory
	insuranceThresholdEur float64
}

// NewIngestParcelBatchCommandHandler creates a handler for batch ingestion.
func NewIngestParcelBatchCommandHandler(
	uowFactory UoWFactory,
	insuranceThresholdEur float64,
) IngestParcelBatchCommandHandler {
	return IngestParcelBatchCommandHandler{
		uowFactory:            uowFactory,
		insuranceThresholdEur: insuranceThresholdEur,
	}
}

// Handle processes the batch and returns the per-record classification.
// Only batch-level failures (loading the rules, beginning a transaction)
// return an error; record-level failures are collected in the result.
func (h IngestParcelBatchCommandHandler) Handle(
	ctx context.Context,
	cmd IngestParcelBatchCommand,
) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	rules, err := h.loadRules(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Total: len(cmd.Records())}

	for _, record := range cmd.Records() {
		h.ingestRecord(ctx, record, rules, &result)
	}

	return result, nil
}

func (h IngestParcelBatchCommandHandler) loadRules(ctx context.Context) ([]*rule.Rule, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rules, err := uow.RuleRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rules, nil
}

// ingestRecord processes one record in its own transaction and files it into
// the matching result group.
func (h IngestParcelBatchCommandHandler) ingestRecord(
	ctx context.Context,
	record map[string]any,
	rules []*rule.Rule,
	result *BatchResult,
) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.Failed = append(result.Failed, FailedRecord{Record: record, Err: err})
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routing := newRoutingServices(uow, h.insuranceThresholdEur)
	parcelRepo := uow.ParcelRepository()

	draft := routing.normalizer.Normalize(record)

	existing, err := parcelRepo.GetByTrackingID(ctx, draft.TrackingID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		result.Failed = append(result.Failed, FailedRecord{Record: record, Err: err})
		return
	}
	if existing != nil {
		result.Duplicates = append(result.Duplicates, DuplicateRecord{
			TrackingID: draft.TrackingID,
			ExistingID: existing.ID(),
		})
		return
	}

	outcome := routing.assigner.Resolve(ctx, draft, rules)

	p, err := buildParcel(kernel.NewUUID(), draft, outcome)
	if err != nil {
		result.Failed = append(result.Failed, FailedRecord{Record: record, Err: err})
		return
	}

	if err = parcelRepo.Add(ctx, p); err != nil {
		result.Failed = append(result.Failed, FailedRecord{Record: record, Err: err})
		return
	}

	if err = uow.Commit(ctx); err != nil {
		result.Failed = append(result.Failed, FailedRecord{Record: record, Err: err})
		return
	}

	result.Created = append(result.Created, p)
}
