package repository

import (
	"context"
	"errors"

	"commune/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for channel messages.
type MessageRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListByChannel(ctx context.Context, channelID uint, limit, offset int) ([]models.Message, error)
	Create(ctx context.Context, message *models.Message) error
	Vote(ctx context.Context, messageID uint, optionIndex int, userID uint) (*models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) ListByChannel(ctx context.Context, channelID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ParentMessageID != nil {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Message{}).
			Where("id = ?", *message.ParentMessageID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count == 0 {
			return models.NewNotFoundError("Parent message", *message.ParentMessageID)
		}
		message.IsResponse = true
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Vote records userID picking option optionIndex of a poll message. A user
// voting again on the same option is a no-op; a vote on a different option
// of a single-answer poll moves the vote.
func (r *messageRepository) Vote(ctx context.Context, messageID uint, optionIndex int, userID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&message, messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", messageID)
			}
			return err
		}
		if message.Type != models.MessageTypePoll {
			return models.NewValidationError("Message is not a poll")
		}
		if optionIndex < 0 || optionIndex >= len(message.Options) {
			return models.NewValidationError("Poll option out of range")
		}

		for i := range message.Options {
			opt := &message.Options[i]
			voted := -1
			for j, v := range opt.Votes {
				if v == userID {
					voted = j
					break
				}
			}
			if i == optionIndex {
				if voted < 0 {
					opt.Votes = append(opt.Votes, userID)
					opt.Quantity = len(opt.Votes)
				}
				continue
			}
			if voted >= 0 && !message.AllowsMultiAnswer {
				opt.Votes = append(opt.Votes[:voted], opt.Votes[voted+1:]...)
				opt.Quantity = len(opt.Votes)
			}
		}

		return tx.Model(&message).Update("options", message.Options).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}
