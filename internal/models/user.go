// Package models contains data structures for the application's domain models.
package models

import "time"

// User is the local mirror of a Clerk account. Rows are created, patched and
// removed by the webhook reconciler (or the seeder); there is no signup path.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:120;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	ProfileImage string    `json:"profile_image,omitempty"`
	ClerkID      string    `gorm:"size:64;not null;uniqueIndex" json:"clerk_id"`
	StripeID     string    `gorm:"size:64" json:"stripe_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated caller extracted from a bearer token. It is
// passed explicitly into every operation that needs it.
type Identity struct {
	Subject string
	Email   string
}

// IsZero reports whether no identity was presented.
func (i Identity) IsZero() bool {
	return i.Subject == "" && i.Email == ""
}
