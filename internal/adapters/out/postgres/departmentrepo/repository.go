package departmentrepo

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/department"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDepartmentRepository implements DepartmentRepository using GORM.
type GormDepartmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDepartmentRepository creates a new GORM department repository.
func NewGormDepartmentRepository(db *gorm.DB, tracker aggregateTracker) *GormDepartmentRepository {
	return &GormDepartmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new department to the database.
func (r *GormDepartmentRepository) Add(ctx context.Context, aggregate *department.Department) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a department by ID.
func (r *GormDepartmentRepository) Get(ctx context.Context, id kernel.UUID) (*department.Department, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepartmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("department", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByName retrieves a department by case-insensitive exact name match.
func (r *GormDepartmentRepository) GetByName(ctx context.Context, name string) (*department.Department, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto DepartmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "lower(name) = lower(?)", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("department", name)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every stored department ordered by name.
func (r *GormDepartmentRepository) GetAll(ctx context.Context) ([]*department.Department, error) {
	var dtos []DepartmentDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	departments := make([]*department.Department, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, nil
}
