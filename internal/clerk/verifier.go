package clerk

import (
	"errors"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// Required svix signature headers on every delivery.
const (
	HeaderSvixID        = "svix-id"
	HeaderSvixTimestamp = "svix-timestamp"
	HeaderSvixSignature = "svix-signature"
)

// ErrMissingHeaders is returned when any of the three svix headers is absent.
var ErrMissingHeaders = errors.New("missing svix signature headers")

// Verifier checks the svix signature of an inbound webhook delivery.
type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

type svixVerifier struct {
	wh *svix.Webhook
}

// NewVerifier builds a Verifier for the given Clerk webhook signing secret
// (the "whsec_..." value from the Clerk dashboard).
func NewVerifier(secret string) (Verifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, err
	}
	return &svixVerifier{wh: wh}, nil
}

func (v *svixVerifier) Verify(payload []byte, headers http.Header) error {
	if headers.Get(HeaderSvixID) == "" ||
		headers.Get(HeaderSvixTimestamp) == "" ||
		headers.Get(HeaderSvixSignature) == "" {
		return ErrMissingHeaders
	}
	return v.wh.Verify(payload, headers)
}
