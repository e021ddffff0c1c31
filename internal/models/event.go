package models

import "time"

// DateInterval is the scheduled window of an event. EndDate is open-ended
// when nil.
type DateInterval struct {
	StartDate time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Event is a scheduled community happening users can mark interest in.
type Event struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Title        string       `gorm:"size:200;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	URL          string       `json:"url"`
	ImageURL     string       `json:"image_url,omitempty"`
	DateInterval DateInterval `gorm:"embedded" json:"date_interval"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	CommunityID  uint         `gorm:"not null;index" json:"community_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// EventInterest records one user's interest in one event, deduplicated by
// the composite unique index.
type EventInterest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index;uniqueIndex:uk_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:uk_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
