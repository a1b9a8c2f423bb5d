// Package rds provides a small redis key value client on top of go-redis
package rds

import (
	"context"
	"errors"
	"fmt"
	"time"

	perr "servicegeek/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr     string
	Password string
	DB       int
}

// RDS wraps a go-redis client with project error mapping
type RDS struct {
	c redis.UniversalClient
}

// Open dials redis and pings it once
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("rds: ping %s: %w", cfg.Addr, err)
	}
	return &RDS{c: c}, nil
}

// New wraps an existing client
func New(c redis.UniversalClient) *RDS { return &RDS{c: c} }

// Get returns the value at key or perr.ErrNotFound on a miss
func (r *RDS) Get(ctx context.Context, key string) (string, error) {
	v, err := r.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", perr.ErrNotFound
	}
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "rds get %s", key)
	}
	return v, nil
}

// Set stores val at key with ttl, zero ttl keeps it forever
func (r *RDS) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	if err := r.c.Set(ctx, key, val, ttl).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "rds set %s", key)
	}
	return nil
}

// Ping checks the server is reachable
func (r *RDS) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// Close releases the pool
func (r *RDS) Close() error { return r.c.Close() }
