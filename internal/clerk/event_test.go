package clerk

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"type": "user.created",
		"data": {
			"id": "user_1",
			"first_name": "Ada",
			"last_name": "Lovelace",
			"email_addresses": [
				{"email_address": "primary@example.com"},
				{"email_address": "secondary@example.com"}
			],
			"image_url": "https://img.example.com/a.png"
		}
	}`)

	evt, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, EventUserCreated, evt.Type)
	assert.Equal(t, "user_1", evt.Data.ID)
	assert.Equal(t, "primary@example.com", evt.Data.PrimaryEmail())
}

func TestParseEvent_Malformed(t *testing.T) {
	_, err := ParseEvent([]byte("{not json"))
	assert.Error(t, err)
}

func TestPrimaryEmail_NoAddresses(t *testing.T) {
	assert.Equal(t, "", UserData{}.PrimaryEmail())
}

func TestVerifier_MissingHeaders(t *testing.T) {
	v, err := NewVerifier("whsec_dGVzdHNlY3JldHZhbHVl")
	require.NoError(t, err)

	err = v.Verify([]byte(`{}`), http.Header{})
	assert.ErrorIs(t, err, ErrMissingHeaders)
}
