package repository

import (
	"context"
	"errors"

	"commune/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines persistence operations for events and interest marks.
type EventRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	MarkInterest(ctx context.Context, eventID, userID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

// ListByCommunity returns a community's events ordered by start date, the
// same ordering the by_date index serves.
func (r *eventRepository) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("start_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// MarkInterest records userID's interest in eventID; marking twice is a no-op.
func (r *eventRepository) MarkInterest(ctx context.Context, eventID, userID uint) error {
	interest := models.EventInterest{EventID: eventID, UserID: userID}
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		FirstOrCreate(&interest).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
