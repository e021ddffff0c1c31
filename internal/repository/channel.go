package repository

import (
	"context"
	"errors"

	"commune/internal/models"

	"gorm.io/gorm"
)

// ChannelRepository defines persistence operations for channels.
type ChannelRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Channel, error)
	ListByCommunity(ctx context.Context, communityID uint) ([]models.Channel, error)
	Create(ctx context.Context, channel *models.Channel) error
}

type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository returns a new ChannelRepository implementation.
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) GetByID(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Channel", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &channel, nil
}

func (r *channelRepository) ListByCommunity(ctx context.Context, communityID uint) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("name ASC").
		Find(&channels).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return channels, nil
}

func (r *channelRepository) Create(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Create(channel).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
