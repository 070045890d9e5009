package cmd

import (
	"log/slog"
	"os"

	httpadapter "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.createUoWFactory(), c.configs.InsuranceThresholdEur)
}

func (c *CompositionRoot) CreateIngestParcelBatchCommandHandler() commands.IngestParcelBatchCommandHandler {
	return commands.NewIngestParcelBatchCommandHandler(c.createUoWFactory(), c.configs.InsuranceThresholdEur)
}

func (c *CompositionRoot) CreateApproveInsuranceCommandHandler() commands.ApproveInsuranceCommandHandler {
	return commands.NewApproveInsuranceCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateRejectInsuranceCommandHandler() commands.RejectInsuranceCommandHandler {
	return commands.NewRejectInsuranceCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCreateDepartmentCommandHandler() commands.CreateDepartmentCommandHandler {
	var f commands.DepartmentUoWFactory = FuncDepartmentUoWFactory(func() commands.DepartmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDepartmentCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRuleCommandHandler() commands.CreateRuleCommandHandler {
	return commands.NewCreateRuleCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUpdateRuleCommandHandler() commands.UpdateRuleCommandHandler {
	return commands.NewUpdateRuleCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRouteUnassignedParcelsCommandHandler() commands.RouteUnassignedParcelsCommandHandler {
	return commands.NewRouteUnassignedParcelsCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetParcelsQueryHandler() queries.GetParcelsQueryHandler {
	return queries.NewGetParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDepartmentsQueryHandler() queries.GetDepartmentsQueryHandler {
	return queries.NewGetDepartmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRulesQueryHandler() queries.GetRulesQueryHandler {
	return queries.NewGetRulesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRouteUnassignedParcelsCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateIngestParcelBatchCommandHandler(),
		c.CreateApproveInsuranceCommandHandler(),
		c.CreateRejectInsuranceCommandHandler(),
		c.CreateCreateDepartmentCommandHandler(),
		c.CreateCreateRuleCommandHandler(),
		c.CreateUpdateRuleCommandHandler(),
		c.CreateGetParcelsQueryHandler(),
		c.CreateGetDepartmentsQueryHandler(),
		c.CreateGetRulesQueryHandler(),
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncDepartmentUoWFactory func() commands.DepartmentUoW

func (f FuncDepartmentUoWFactory) Create() commands.DepartmentUoW {
	return f()
}
