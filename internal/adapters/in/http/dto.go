package http

import (
	"encoding/json"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/rule"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Parcel is the JSON representation of a stored parcel.
type Parcel struct {
	ID             string     `json:"id"`
	TrackingID     string     `json:"trackingId"`
	WeightKg       *float64   `json:"weightKg,omitempty"`
	ValueEur       *float64   `json:"valueEur,omitempty"`
	Destination    string     `json:"destination,omitempty"`
	DepartmentID   *string    `json:"departmentId,omitempty"`
	ApprovalStatus string     `json:"approvalStatus"`
	ApprovedBy     *string    `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
}

// Department is the JSON representation of a department.
type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Rule is the JSON representation of a routing rule. Config is emitted
// verbatim as stored.
type Rule struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	RuleType string          `json:"ruleType"`
	Priority int             `json:"priority"`
	Version  string          `json:"version"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// NewDepartment is the request body for registering a department.
type NewDepartment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewRule is the request body for registering or updating a routing rule.
type NewRule struct {
	Name     string          `json:"name"`
	RuleType string          `json:"ruleType"`
	Priority int             `json:"priority"`
	Version  string          `json:"version"`
	Config   json.RawMessage `json:"config"`
}

// BatchUploadResult summarises an XML batch upload.
type BatchUploadResult struct {
	Total      int               `json:"total"`
	Created    int               `json:"created"`
	Duplicates int               `json:"duplicates"`
	Failed     int               `json:"failed"`
	Parcels    []Parcel          `json:"parcels"`
	Duplicate  []DuplicateDetail `json:"duplicateDetails,omitempty"`
	Failures   []FailureDetail   `json:"failureDetails,omitempty"`
}

// DuplicateDetail identifies one skipped duplicate record.
type DuplicateDetail struct {
	TrackingID string `json:"trackingId"`
	ExistingID string `json:"existingId"`
}

// FailureDetail pairs one rejected record with its error.
type FailureDetail struct {
	Record map[string]any `json:"record"`
	Error  string         `json:"error"`
}

func parcelToResponse(p *parcel.Parcel) Parcel {
	response := Parcel{
		ID:             p.ID().String(),
		TrackingID:     p.TrackingID(),
		WeightKg:       p.WeightKg(),
		ValueEur:       p.ValueEur(),
		Destination:    p.Destination(),
		ApprovalStatus: p.ApprovalStatus().String(),
		ApprovedAt:     p.ApprovedAt(),
	}

	if departmentID := p.Department(); departmentID != nil {
		s := departmentID.String()
		response.DepartmentID = &s
	}
	if approvedBy := p.ApprovedBy(); approvedBy != nil {
		s := approvedBy.String()
		response.ApprovedBy = &s
	}

	return response
}

func parcelReadModelToResponse(row queries.GetParcelsQueryResponse) Parcel {
	response := Parcel{
		ID:             row.ID.String(),
		TrackingID:     row.TrackingID,
		WeightKg:       row.WeightKg,
		ValueEur:       row.ValueEur,
		Destination:    row.Destination,
		ApprovalStatus: row.ApprovalStatus,
		ApprovedAt:     row.ApprovedAt,
	}

	if row.DepartmentID != nil {
		s := row.DepartmentID.String()
		response.DepartmentID = &s
	}
	if row.ApprovedBy != nil {
		s := row.ApprovedBy.String()
		response.ApprovedBy = &s
	}

	return response
}

func departmentToResponse(d *department.Department) Department {
	return Department{
		ID:          d.ID().String(),
		Name:        d.Name(),
		Description: d.Description(),
	}
}

func ruleToResponse(r *rule.Rule) Rule {
	return Rule{
		ID:       r.ID().String(),
		Name:     r.Name(),
		RuleType: string(r.Type()),
		Priority: r.Priority(),
		Version:  r.Version(),
		Config:   r.Config(),
	}
}

func batchResultToResponse(result commands.BatchResult) BatchUploadResult {
	response := BatchUploadResult{
		Total:      result.Total,
		Created:    len(result.Created),
		Duplicates: len(result.Duplicates),
		Failed:     len(result.Failed),
		Parcels:    make([]Parcel, 0, len(result.Created)),
	}

	for _, p := range result.Created {
		response.Parcels = append(response.Parcels, parcelToResponse(p))
	}
	for _, d := range result.Duplicates {
		response.Duplicate = append(response.Duplicate, DuplicateDetail{
			TrackingID: d.TrackingID,
			ExistingID: d.ExistingID.String(),
		})
	}
	for _, f := range result.Failed {
		response.Failures = append(response.Failures, FailureDetail{
			Record: f.Record,
			Error:  f.Err.Error(),
		})
	}

	return response
}
