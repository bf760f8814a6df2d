// Package rds provides a redis client over go-redis
package rds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures redis connectivity
type Config struct {
	Addr     string
	DB       int
	Password string
	// DialTimeout bounds connection setup, default 3s
	DialTimeout time.Duration
}

// Client wraps *redis.Client; it satisfies redis.Scripter so Lua scripts can run on it
type Client struct {
	*redis.Client
}

// Open builds a client. Dialing is lazy; call Ping to verify
func Open(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("rds: empty addr")
	}
	dt := cfg.DialTimeout
	if dt <= 0 {
		dt = 3 * time.Second
	}
	c := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Password:     cfg.Password,
		DialTimeout:  dt,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return &Client{Client: c}, nil
}

// Ping verifies connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close releases the pool
func (c *Client) Close() error { return c.Client.Close() }
