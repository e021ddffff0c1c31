package repository

import (
	"context"
	"errors"

	"commune/internal/models"

	"gorm.io/gorm"
)

// ThreadRepository defines persistence operations for threads and likes.
type ThreadRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Thread, error)
	Create(ctx context.Context, thread *models.Thread) error
	Like(ctx context.Context, threadID, userID uint) error
	Unlike(ctx context.Context, threadID, userID uint) error
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository returns a new ThreadRepository implementation.
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	var thread models.Thread
	if err := r.db.WithContext(ctx).Preload("User").First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thread", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &thread, nil
}

func (r *threadRepository) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Thread, error) {
	var threads []models.Thread
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return threads, nil
}

func (r *threadRepository) Create(ctx context.Context, thread *models.Thread) error {
	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Like records userID liking threadID. Liking an already-liked thread is a
// no-op, so the counter can never drift from the like rows.
func (r *threadRepository) Like(ctx context.Context, threadID, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ThreadLike
		err := tx.Where("thread_id = ? AND user_id = ?", threadID, userID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.ThreadLike{ThreadID: threadID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thread{}).Where("id = ?", threadID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Unlike removes userID's like from threadID if present.
func (r *threadRepository) Unlike(ctx context.Context, threadID, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("thread_id = ? AND user_id = ?", threadID, userID).Delete(&models.ThreadLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Thread{}).Where("id = ?", threadID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
