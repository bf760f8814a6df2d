package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"chirp/internal/platform/config"
	perr "chirp/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func signingKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

func publicPEM(t *testing.T, k *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&k.PublicKey)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestNew_KeyHandling(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); !errors.Is(err, ErrNoKey) {
		t.Fatalf("err = %v, want ErrNoKey", err)
	}
	if _, err := New(Options{PublicKeyPEM: "not a key"}); err == nil {
		t.Fatalf("garbage key accepted")
	}
	escaped := strings.ReplaceAll(publicPEM(t, signingKey(t)), "\n", `\n`)
	if _, err := New(Options{PublicKeyPEM: escaped}); err != nil {
		t.Fatalf("escaped newlines rejected: %v", err)
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	key := signingKey(t)
	v, err := New(Options{PublicKeyPEM: publicPEM(t, key), Issuer: "https://clerk.chirp.dev"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Now()
	valid := jwt.RegisteredClaims{
		Subject:   "user_2abc",
		Issuer:    "https://clerk.chirp.dev",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}
	with := func(mut func(*jwt.RegisteredClaims)) jwt.RegisteredClaims {
		c := valid
		mut(&c)
		return c
	}

	cases := []struct {
		name  string
		token string
		sub   string
	}{
		{"valid", sign(t, jwt.SigningMethodRS256, key, valid), "user_2abc"},
		{"expired", sign(t, jwt.SigningMethodRS256, key, with(func(c *jwt.RegisteredClaims) {
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))
		})), ""},
		{"no exp", sign(t, jwt.SigningMethodRS256, key, with(func(c *jwt.RegisteredClaims) { c.ExpiresAt = nil })), ""},
		{"wrong issuer", sign(t, jwt.SigningMethodRS256, key, with(func(c *jwt.RegisteredClaims) { c.Issuer = "evil" })), ""},
		{"no subject", sign(t, jwt.SigningMethodRS256, key, with(func(c *jwt.RegisteredClaims) { c.Subject = "" })), ""},
		{"hmac", sign(t, jwt.SigningMethodHS256, []byte("secret"), valid), ""},
		{"garbage", "a.b.c", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub, err := v.Verify(context.Background(), tc.token)
			if tc.sub != "" {
				if err != nil || sub != tc.sub {
					t.Fatalf("sub=%q err=%v", sub, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("token accepted, sub=%q", sub)
			}
			if perr.KindFor(err) != perr.KindUnauthenticated {
				t.Fatalf("kind = %v", perr.KindFor(err))
			}
		})
	}
}

func TestOptionsFrom(t *testing.T) {
	t.Setenv("AUTH_JWT_ISSUER", "https://issuer")

	o := OptionsFrom(config.Conf{})
	if o.Issuer != "https://issuer" || o.PublicKeyPEM != "" || o.Leeway != 5*time.Second {
		t.Fatalf("options = %+v", o)
	}
}
