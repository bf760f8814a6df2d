package httpkit

import (
	"context"
	"net/http"

	perrs "chirp/internal/platform/errors"
)

// TokenFunc verifies a bearer token and returns the caller's user id
type TokenFunc func(ctx context.Context, token string) (userID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a verifier function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the caller id from an Authorization Bearer token.
// Missing or malformed headers and verifier failures are all UNAUTHENTICATED
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := JWT(r)
	if err != nil {
		return "", err
	}
	if p == nil || p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(r.Context(), raw)
	if err != nil {
		return "", perrs.Wrap(err, perrs.ErrorCodeUnauthorized, "invalid bearer token")
	}
	return uid, nil
}
