package middleware

import (
	"net/http"
	"strings"

	perr "chirp/internal/platform/errors"
	"chirp/internal/platform/logger"
	pnet "chirp/internal/platform/net"
)

// AuthPort resolves the caller behind a request
type AuthPort interface {
	// Parse returns the caller's user id or an UNAUTHENTICATED error
	Parse(r *http.Request) (userID string, err error)
}

// WriteFunc writes a status and JSON body
type WriteFunc func(w http.ResponseWriter, status int, body any)

// Auth requires a caller. Requests the port rejects get the error envelope
// and never reach next. A nil port rejects everything
func Auth(p AuthPort, write WriteFunc) func(http.Handler) http.Handler {
	return authWith(p, write, true)
}

// OptionalAuth resolves the caller when an Authorization header carries a valid token.
// Anything else continues anonymously; Auth further down decides whether that is enough
func OptionalAuth(p AuthPort, write WriteFunc) func(http.Handler) http.Handler {
	return authWith(p, write, false)
}

func authWith(p AuthPort, write WriteFunc, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !required && strings.TrimSpace(r.Header.Get("Authorization")) == "" {
				next.ServeHTTP(w, r)
				return
			}
			var (
				uid string
				err error
			)
			if p == nil {
				err = perr.Unauthorizedf("authentication is not configured")
			} else {
				uid, err = p.Parse(r)
			}
			if err == nil && uid == "" {
				err = perr.Unauthorizedf("missing caller identity")
			}
			if err != nil && !required {
				logger.C(r.Context()).Debug().Err(err).Msg("ignoring unusable credentials")
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				if perr.KindFor(err) != perr.KindUnauthenticated {
					err = perr.Wrap(err, perr.ErrorCodeUnauthorized, "invalid credentials")
				}
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
