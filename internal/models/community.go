package models

import "time"

// Status defines the lifecycle state shared by communities and channels.
type Status string

const (
	// StatusActive indicates the record is visible and usable.
	StatusActive Status = "active"
	// StatusInactive indicates the record is disabled.
	StatusInactive Status = "inactive"
)

// Privacy defines who can see a community.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// Theme holds the five style values a community can brand itself with.
type Theme struct {
	PrimaryColorBg     string `json:"primary_color_bg"`
	SecondaryColorBg   string `json:"secondary_color_bg"`
	ActionColor        string `json:"action_color"`
	PrimaryColorText   string `json:"primary_color_text"`
	SecondaryColorText string `json:"secondary_color_text"`
}

// Feature is one entry of a community's ordered feature list.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

// Community is a tenant namespace owning threads, events, channels, plans
// and subscriptions.
type Community struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `json:"image_url"`
	MembersCount int64     `gorm:"not null;default:0" json:"members_count"`
	Status       Status    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Privacy      Privacy   `gorm:"type:varchar(20);not null;default:'public'" json:"privacy"`
	Domain       string    `gorm:"size:255" json:"domain"`
	Theme        Theme     `gorm:"embedded;embeddedPrefix:theme_" json:"theme"`
	Features     []Feature `gorm:"serializer:json" json:"features"`
	CreatorID    uint      `gorm:"not null;index" json:"creator_id"`
	Creator      *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	StripeID     string    `gorm:"size:64" json:"stripe_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}
