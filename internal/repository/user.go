// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"commune/internal/cache"
	"commune/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users. Lookup methods
// return (nil, nil) when no row matches; absence is not an error.
type UserRepository interface {
	GetByClerkID(ctx context.Context, clerkID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, clerkID, fullName, email, profileImage string) (*models.User, error)
	Delete(ctx context.Context, clerkID string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	key := cache.UserByClerkIDKey(clerkID)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Create inserts a new user. The uniqueness of clerk_id and email is checked
// inside the same transaction as the insert, so two racing webhook
// deliveries cannot both succeed; the unique indexes are the backstop.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("clerk_id = ? OR email = ?", user.ClerkID, user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.NewConflictError("User already exists")
		}
		return tx.Create(user).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	if user.ID == 0 {
		return &models.AppError{Code: "INTERNAL_ERROR", Message: "Failed to create user"}
	}
	return nil
}

// UpdateProfile patches fullName, email and profileImage of the user with
// the given clerk id. The clerk id and stripe id are never touched.
func (r *userRepository) UpdateProfile(ctx context.Context, clerkID, fullName, email, profileImage string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clerk_id = ?", clerkID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", clerkID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.NewConflictError("Email already in use")
		}

		user.FullName = fullName
		user.Email = email
		user.ProfileImage = profileImage
		return tx.Model(&user).Updates(map[string]interface{}{
			"full_name":     fullName,
			"email":         email,
			"profile_image": profileImage,
		}).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateUserByClerkID(ctx, clerkID)
	return &user, nil
}

// Delete removes the user and every row the user owns in one transaction:
// likes, event interests, messages, subscriptions, threads (with their
// likes) and events (with their interests). Member counters of communities
// the user was actively subscribed to are decremented. Communities the user
// created are kept. Returns false when no user with the clerk id exists.
func (r *userRepository) Delete(ctx context.Context, clerkID string) (bool, error) {
	found := false
	var memberCommunityIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("clerk_id = ?", clerkID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ThreadLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.EventInterest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		// The member counter follows active subscriptions, so removing
		// them has to decrement it in the same transaction.
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND is_active = ?", user.ID, true).
			Pluck("community_id", &memberCommunityIDs).Error; err != nil {
			return err
		}
		for _, communityID := range memberCommunityIDs {
			if err := tx.Model(&models.Community{}).Where("id = ?", communityID).
				UpdateColumn("members_count", gorm.Expr("members_count - 1")).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}

		// Rows owned by the user's threads and events go too.
		if err := tx.Where("thread_id IN (?)",
			tx.Model(&models.Thread{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&models.ThreadLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Thread{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id IN (?)",
			tx.Model(&models.Event{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&models.EventInterest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Event{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return found, models.NewInternalError(err)
	}

	if found {
		cache.InvalidateUserByClerkID(ctx, clerkID)
		for _, communityID := range memberCommunityIDs {
			cache.InvalidateCommunity(ctx, communityID)
		}
	}
	return found, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
