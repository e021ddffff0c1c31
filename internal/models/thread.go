package models

import "time"

// Thread is a community discussion post.
type Thread struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	ImageURL    string    `json:"image_url,omitempty"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CommunityID uint      `gorm:"not null;index" json:"community_id"`
	LikesCount  int64     `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ThreadLike records one user liking one thread. The composite unique index
// makes likes a set rather than a list, so duplicate deliveries cannot
// inflate the count.
type ThreadLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThreadID  uint      `gorm:"not null;index;uniqueIndex:uk_thread_user" json:"thread_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:uk_thread_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
