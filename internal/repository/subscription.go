package repository

import (
	"context"
	"errors"

	"commune/internal/cache"
	"commune/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines persistence operations for subscriptions.
// The community member counter is maintained in the same transaction as the
// subscription row it reflects.
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Subscription, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Deactivate(ctx context.Context, id uint) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Subscription", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Plan").
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}

// Create inserts an active subscription and bumps the community's member
// counter in the same transaction. A user can hold at most one active
// subscription per community.
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND community_id = ? AND is_active = ?", sub.UserID, sub.CommunityID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.NewConflictError("User already has an active subscription for this community")
		}

		sub.IsActive = true
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		return tx.Model(&models.Community{}).Where("id = ?", sub.CommunityID).
			UpdateColumn("members_count", gorm.Expr("members_count + 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateCommunity(ctx, sub.CommunityID)
	return nil
}

// Deactivate marks the subscription inactive and decrements the member
// counter. Deactivating an already-inactive subscription is a no-op.
func (r *subscriptionRepository) Deactivate(ctx context.Context, id uint) error {
	var communityID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		if err := tx.First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Subscription", id)
			}
			return err
		}
		if !sub.IsActive {
			return nil
		}
		communityID = sub.CommunityID

		if err := tx.Model(&sub).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Community{}).Where("id = ?", sub.CommunityID).
			UpdateColumn("members_count", gorm.Expr("members_count - 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	if communityID != 0 {
		cache.InvalidateCommunity(ctx, communityID)
	}
	return nil
}
