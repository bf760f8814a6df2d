// Package identity is a small REST client for a Clerk style user directory
package identity

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chirp/internal/platform/config"
	perr "chirp/internal/platform/errors"
	"chirp/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.clerk.com"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "chirp-api"
	defaultRetryBase = 250 * time.Millisecond
	maxRetryWait     = 5 * time.Second

	// MaxBatch is the most ids a single user list call accepts
	MaxBatch = 100
)

// Options configures the Client
type Options struct {
	BaseURL   string
	SecretKey string
	UserAgent string
	Timeout   time.Duration

	// Retries apply to 429 and 5xx only. Zero means one attempt
	MaxRetries int
	RetryBase  time.Duration
}

// OptionsFrom reads IDENTITY_* keys
func OptionsFrom(cfg config.Conf) Options {
	c := cfg.Prefix("IDENTITY_")
	return Options{
		BaseURL:    c.MayString("API_URL", baseURLDefault),
		SecretKey:  c.MayString("SECRET_KEY", ""),
		Timeout:    c.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries: c.MayInt("MAX_RETRIES", 0),
	}
}

// Client talks to the user directory
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	pause func(context.Context, time.Duration) error
}

// NewClient creates a Client with defaults filled in
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("identity"),
		pause: sleepCtx,
	}
}

// get issues an authenticated GET and returns the body of a 200 response
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	attempts := 0
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "identity new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if c.opts.SecretKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.SecretKey)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "identity service unreachable")
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", time.Since(start)).
			Msg("identity http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "identity read body failed")
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			_ = drainAndClose(resp.Body)
			if attempts >= c.opts.MaxRetries {
				return nil, perr.Newf(perr.ErrorCodeUpstream, "identity service returned %d", resp.StatusCode)
			}
			wait := retryAfter(resp.Header)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			c.log.Warn().Dur("retry_in", wait).Int("attempt", attempts).Int("status", resp.StatusCode).Msg("identity transient error retrying")
			if err := c.pause(ctx, wait); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "identity lookup cancelled")
			}
			attempts++
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUpstream, "identity unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	return min(c.opts.RetryBase<<uint(attempt), maxRetryWait)
}
