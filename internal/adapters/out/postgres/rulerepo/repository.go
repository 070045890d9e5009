package rulerepo

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/rule"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRuleRepository implements RuleRepository using GORM.
type GormRuleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRuleRepository creates a new GORM rule repository.
func NewGormRuleRepository(db *gorm.DB, tracker aggregateTracker) *GormRuleRepository {
	return &GormRuleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rule to the database.
func (r *GormRuleRepository) Add(ctx context.Context, aggregate *rule.Rule) error {
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

// Update saves an existing rule to the database. The whole row is rewritten,
// including a config that may have shrunk.
func (r *GormRuleRepository) Update(ctx context.Context, aggregate *rule.Rule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RuleDTO{}).Where("id = ?", dto.ID).
		Select("name", "rule_type", "priority", "version", "config").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rule by ID.
func (r *GormRuleRepository) Get(ctx context.Context, id kernel.UUID) (*rule.Rule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RuleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rule", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every stored rule in ascending priority order.
func (r *GormRuleRepository) GetAll(ctx context.Context) ([]*rule.Rule, error) {
	var dtos []RuleDTO
	if err := r.db.WithContext(ctx).Order("priority").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]*rule.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rl, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rl)
	}

	return rules, nil
}
