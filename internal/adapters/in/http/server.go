// Package http provides the inbound HTTP adapter: an echo server exposing
// parcel ingestion, insurance review, and rule/department administration.
package http

import (
	"errors"
	"io"
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler     commands.CreateParcelCommandHandler
	ingestBatchHandler      commands.IngestParcelBatchCommandHandler
	approveInsuranceHandler commands.ApproveInsuranceCommandHandler
	rejectInsuranceHandler  commands.RejectInsuranceCommandHandler
	createDepartmentHandler commands.CreateDepartmentCommandHandler
	createRuleHandler       commands.CreateRuleCommandHandler
	updateRuleHandler       commands.UpdateRuleCommandHandler

	// Query handlers
	getParcelsHandler     queries.GetParcelsQueryHandler
	getDepartmentsHandler queries.GetDepartmentsQueryHandler
	getRulesHandler       queries.GetRulesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	ingestBatchHandler commands.IngestParcelBatchCommandHandler,
	approveInsuranceHandler commands.ApproveInsuranceCommandHandler,
	rejectInsuranceHandler commands.RejectInsuranceCommandHandler,
	createDepartmentHandler commands.CreateDepartmentCommandHandler,
	createRuleHandler commands.CreateRuleCommandHandler,
	updateRuleHandler commands.UpdateRuleCommandHandler,
	getParcelsHandler queries.GetParcelsQueryHandler,
	getDepartmentsHandler queries.GetDepartmentsQueryHandler,
	getRulesHandler queries.GetRulesQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:     createParcelHandler,
		ingestBatchHandler:      ingestBatchHandler,
		approveInsuranceHandler: approveInsuranceHandler,
		rejectInsuranceHandler:  rejectInsuranceHandler,
		createDepartmentHandler: createDepartmentHandler,
		createRuleHandler:       createRuleHandler,
		updateRuleHandler:       updateRuleHandler,
		getParcelsHandler:       getParcelsHandler,
		getDepartmentsHandler:   getDepartmentsHandler,
		getRulesHandler:         getRulesHandler,
	}
}

// RegisterRoutes wires the API onto an echo instance. Parcel ingestion and
// reads are open; insurance decisions need the insurance or admin role, and
// rule/department mutation needs admin.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *AuthMiddleware) {
	insuranceOrAdmin := auth.RequireRole(RoleInsurance, RoleAdmin)
	adminOnly := auth.RequireRole(RoleAdmin)

	e.GET("/health", s.Health)

	e.POST("/api/parcels", s.CreateParcel)
	e.POST("/api/parcels/upload", s.UploadParcels)
	e.GET("/api/parcels", s.GetParcels)
	e.POST("/api/parcels/:id/approve-insurance", s.ApproveInsurance, insuranceOrAdmin)
	e.POST("/api/parcels/:id/reject-insurance", s.RejectInsurance, insuranceOrAdmin)

	e.GET("/api/departments", s.GetDepartments)
	e.POST("/api/departments", s.CreateDepartment, adminOnly)

	e.GET("/api/rules", s.GetRules)
	e.POST("/api/rules", s.CreateRule, adminOnly)
	e.PUT("/api/rules/:id", s.UpdateRule, adminOnly)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateParcel handles POST /api/parcels - ingests a single parcel record.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var record map[string]any
	if err := ctx.Bind(&record); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), record)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid parcel data: " + err.Error(),
		})
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrDuplicateTrackingID) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Parcel with this tracking ID already exists",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create parcel",
		})
	}

	return ctx.JSON(http.StatusCreated, parcelToResponse(created))
}

// UploadParcels handles POST /api/parcels/upload - ingests an XML manifest.
// The manifest arrives as a multipart form file named "file".
func (s *Server) UploadParcels(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "File is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Failed to read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Failed to read uploaded file",
		})
	}

	records, err := ParseParcelDocument(data)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid XML document: " + err.Error(),
		})
	}

	cmd, err := commands.NewIngestParcelBatchCommand(records)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid batch: " + err.Error(),
		})
	}

	result, err := s.ingestBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process batch",
		})
	}

	return ctx.JSON(http.StatusOK, batchResultToResponse(result))
}

// GetParcels handles GET /api/parcels - retrieves parcels, optionally
// filtered by ?dept= (department id or case-insensitive name).
func (s *Server) GetParcels(ctx echo.Context) error {
	query := queries.NewGetParcelsQuery(ctx.QueryParam("dept"))

	parcels, err := s.getParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve parcels",
		})
	}

	response := make([]Parcel, len(parcels))
	for i, row := range parcels {
		response[i] = parcelReadModelToResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApproveInsurance handles POST /api/parcels/:id/approve-insurance.
func (s *Server) ApproveInsurance(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}

	approver, err := operatorID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Token carries no operator identity",
		})
	}

	cmd, err := commands.NewApproveInsuranceCommand(parcelID, approver)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid approval request: " + err.Error(),
		})
	}

	approved, err := s.approveInsuranceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.insuranceDecisionError(ctx, err, "Failed to approve insurance")
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(approved))
}

// RejectInsurance handles POST /api/parcels/:id/reject-insurance.
func (s *Server) RejectInsurance(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid parcel id",
		})
	}

	rejector, err := operatorID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Token carries no operator identity",
		})
	}

	cmd, err := commands.NewRejectInsuranceCommand(parcelID, rejector)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid rejection request: " + err.Error(),
		})
	}

	rejected, err := s.rejectInsuranceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.insuranceDecisionError(ctx, err, "Failed to reject insurance")
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(rejected))
}

// insuranceDecisionError maps insurance decision failures: unknown parcels to
// 404, invalid state transitions (parcel not pending) to 409.
func (s *Server) insuranceDecisionError(ctx echo.Context, err error, fallback string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Parcel not found",
		})
	}
	if errors.Is(err, errs.ErrValueIsInvalid) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Parcel is not pending insurance review",
		})
	}
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: fallback,
	})
}

// GetDepartments handles GET /api/departments - retrieves all departments.
func (s *Server) GetDepartments(ctx echo.Context) error {
	query := queries.NewGetDepartmentsQuery()

	departments, err := s.getDepartmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve departments",
		})
	}

	response := make([]Department, len(departments))
	for i, row := range departments {
		response[i] = Department{
			ID:          row.ID.String(),
			Name:        row.Name,
			Description: row.Description,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDepartment handles POST /api/departments - registers a department.
func (s *Server) CreateDepartment(ctx echo.Context) error {
	var newDepartment NewDepartment
	if err := ctx.Bind(&newDepartment); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateDepartmentCommand(
		kernel.NewUUID(),
		newDepartment.Name,
		newDepartment.Description,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid department data: " + err.Error(),
		})
	}

	created, err := s.createDepartmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrDepartmentAlreadyExists) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Department with this name already exists",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create department",
		})
	}

	return ctx.JSON(http.StatusCreated, departmentToResponse(created))
}

// GetRules handles GET /api/rules - retrieves rules in evaluation order.
func (s *Server) GetRules(ctx echo.Context) error {
	query := queries.NewGetRulesQuery()

	rules, err := s.getRulesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve rules",
		})
	}

	response := make([]Rule, len(rules))
	for i, row := range rules {
		response[i] = Rule{
			ID:       row.ID.String(),
			Name:     row.Name,
			RuleType: row.RuleType,
			Priority: row.Priority,
			Version:  row.Version,
			Config:   row.Config,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRule handles POST /api/rules - registers a routing rule.
// Weight-rule bucket references are resolved during handling; an unknown
// department reference rejects the rule.
func (s *Server) CreateRule(ctx echo.Context) error {
	var newRule NewRule
	if err := ctx.Bind(&newRule); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateRuleCommand(
		kernel.NewUUID(),
		newRule.Name,
		rule.Type(newRule.RuleType),
		newRule.Priority,
		newRule.Config,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid rule data: " + err.Error(),
		})
	}

	created, err := s.createRuleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Rule references an unknown department: " + err.Error(),
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create rule",
		})
	}

	return ctx.JSON(http.StatusCreated, ruleToResponse(created))
}

// UpdateRule handles PUT /api/rules/:id - replaces a rule definition.
func (s *Server) UpdateRule(ctx echo.Context) error {
	ruleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid rule id",
		})
	}

	var newRule NewRule
	if err = ctx.Bind(&newRule); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateRuleCommand(
		ruleID,
		newRule.Name,
		rule.Type(newRule.RuleType),
		newRule.Priority,
		newRule.Version,
		newRule.Config,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid rule data: " + err.Error(),
		})
	}

	updated, err := s.updateRuleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Rule or referenced department not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update rule",
		})
	}

	return ctx.JSON(http.StatusOK, ruleToResponse(updated))
}
