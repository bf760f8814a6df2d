// Package auth verifies identity provider session tokens (RS256 JWTs)
package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"strings"
	"time"

	"chirp/internal/platform/config"
	perr "chirp/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Options configures the verifier
type Options struct {
	// PublicKeyPEM is the provider's RSA public key. Literal \n sequences are accepted
	PublicKeyPEM string
	// Issuer is checked against iss when set
	Issuer string
	Leeway time.Duration
}

// OptionsFrom reads AUTH_JWT_* keys
func OptionsFrom(cfg config.Conf) Options {
	c := cfg.Prefix("AUTH_JWT_")
	return Options{
		PublicKeyPEM: c.MayString("PUBLIC_KEY", ""),
		Issuer:       c.MayString("ISSUER", ""),
		Leeway:       c.MayDuration("LEEWAY", 5*time.Second),
	}
}

// ErrNoKey reports that no public key was configured
var ErrNoKey = errors.New("auth: no public key configured")

// Verifier checks session tokens and yields the subject as user id
type Verifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
}

// New parses the public key. ErrNoKey when none was given
func New(o Options) (*Verifier, error) {
	pemText := strings.TrimSpace(strings.ReplaceAll(o.PublicKeyPEM, `\n`, "\n"))
	if pemText == "" {
		return nil, ErrNoKey
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemText))
	if err != nil {
		return nil, err
	}
	return &Verifier{key: key, parser: newParser(o, time.Now)}, nil
}

func newParser(o Options, now func() time.Time) *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(o.Leeway),
		jwt.WithTimeFunc(now),
	}
	if o.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(o.Issuer))
	}
	return jwt.NewParser(opts...)
}

// Verify returns the sub claim of a valid token. It matches httpkit.TokenFunc
func (v *Verifier) Verify(_ context.Context, token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnauthorized, "session token rejected")
	}
	if claims.Subject == "" {
		return "", perr.Unauthorizedf("session token has no subject")
	}
	return claims.Subject, nil
}
