// Package clerk handles inbound Clerk webhook deliveries: svix signature
// verification and event payload decoding.
package clerk

import "encoding/json"

// Event types delivered by Clerk that the reconciler acts on. Anything else
// is acknowledged and ignored.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// EmailAddress is one entry of a Clerk account's email address list.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// UserData is the payload of a user lifecycle event. Only id is present on
// user.deleted.
type UserData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	ImageURL       string         `json:"image_url"`
}

// Event is a verified Clerk webhook event.
type Event struct {
	Type string   `json:"type"`
	Data UserData `json:"data"`
}

// PrimaryEmail returns the first email address of the account, or "" when
// none is attached.
func (d UserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// ParseEvent decodes a verified webhook body.
func ParseEvent(payload []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}
