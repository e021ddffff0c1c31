package models

import "time"

// Channel is a named message stream inside a community.
type Channel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:120;not null" json:"name"`
	Icon          string    `gorm:"size:64" json:"icon"`
	Status        Status    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	AllowsWriting bool      `gorm:"not null;default:true" json:"allows_writing"`
	CommunityID   uint      `gorm:"not null;index" json:"community_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
