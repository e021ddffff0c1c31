package models

import "time"

// MessageType discriminates the three kinds of channel messages.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypePoll  MessageType = "poll"
)

// PollDuration is how long a poll accepts votes.
type PollDuration string

const (
	PollDuration1Hour   PollDuration = "1h"
	PollDuration4Hours  PollDuration = "4h"
	PollDuration8Hours  PollDuration = "8h"
	PollDuration24Hours PollDuration = "24h"
	PollDuration3Days   PollDuration = "3d"
	PollDuration1Week   PollDuration = "1w"
)

// ValidPollDuration reports whether d is one of the fixed poll durations.
func ValidPollDuration(d PollDuration) bool {
	switch d {
	case PollDuration1Hour, PollDuration4Hours, PollDuration8Hours,
		PollDuration24Hours, PollDuration3Days, PollDuration1Week:
		return true
	}
	return false
}

// PollOption is one answer of a poll message. Votes holds the ids of users
// who picked it; Quantity is kept denormalized alongside.
type PollOption struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
	Votes    []uint `json:"votes"`
}

// Message is a single channel message. Image and poll fields are only
// populated for the matching type. ParentMessageID is nil for messages that
// are not replies.
type Message struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Message           string       `gorm:"type:text;not null" json:"message"`
	Type              MessageType  `gorm:"type:varchar(10);not null;default:'text'" json:"type"`
	CommunityID       uint         `gorm:"not null;index" json:"community_id"`
	ChannelID         uint         `gorm:"not null;index" json:"channel_id"`
	UserID            uint         `gorm:"not null;index" json:"user_id"`
	IsEdited          bool         `gorm:"not null;default:false" json:"is_edited"`
	IsResponse        bool         `gorm:"not null;default:false" json:"is_response"`
	ParentMessageID   *uint        `gorm:"index" json:"parent_message_id,omitempty"`
	ImageURL          string       `json:"image_url,omitempty"`
	Question          string       `json:"question,omitempty"`
	Options           []PollOption `gorm:"serializer:json" json:"options,omitempty"`
	AllowsMultiAnswer bool         `gorm:"not null;default:false" json:"allows_multi_answer"`
	Duration          PollDuration `gorm:"type:varchar(5)" json:"duration,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
