package models

import "time"

// PlanInterval is the billing cadence of a plan.
type PlanInterval string

const (
	PlanIntervalWeek  PlanInterval = "week"
	PlanIntervalMonth PlanInterval = "month"
	PlanIntervalYear  PlanInterval = "year"
)

// Plan is a paid tier offered by a community. Pricing lives in Stripe; only
// the identifiers are stored here.
type Plan struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:120;not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description,omitempty"`
	Price        float64      `gorm:"not null" json:"price"`
	Interval     PlanInterval `gorm:"type:varchar(10);not null" json:"interval"`
	StripePlanID string       `gorm:"size:64;not null" json:"stripe_plan_id"`
	CommunityID  uint         `gorm:"not null;index" json:"community_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Subscription ties a user to a community plan. Deactivating it keeps the
// row for history; the community member counter follows IsActive.
type Subscription struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;index" json:"user_id"`
	CommunityID          uint      `gorm:"not null;index" json:"community_id"`
	PlanID               uint      `gorm:"not null;index" json:"plan_id"`
	Plan                 *Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	StripeSubscriptionID string    `gorm:"size:64" json:"stripe_subscription_id"`
	IsActive             bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
