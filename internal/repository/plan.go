package repository

import (
	"context"
	"errors"

	"commune/internal/models"

	"gorm.io/gorm"
)

// PlanRepository defines persistence operations for community plans.
type PlanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Plan, error)
	ListByCommunity(ctx context.Context, communityID uint) ([]models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository returns a new PlanRepository implementation.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) GetByID(ctx context.Context, id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Plan", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

func (r *planRepository) ListByCommunity(ctx context.Context, communityID uint) ([]models.Plan, error) {
	var plans []models.Plan
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("price ASC").
		Find(&plans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
