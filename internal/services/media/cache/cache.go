// Package cache keeps recently signed urls in redis or in process memory
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/store"
)

const keyPrefix = "signed-url:"

// KV caches through the store redis seam
type KV struct {
	kv store.KV
}

// NewKV wraps a store.KV
func NewKV(kv store.KV) *KV { return &KV{kv: kv} }

// Get returns a cached url; any redis fault is a miss
func (c *KV) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.kv.Get(ctx, keyPrefix+key)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// Set stores url for ttl; failures are logged and ignored
func (c *KV) Set(ctx context.Context, key, url string, ttl time.Duration) {
	if err := c.kv.Set(ctx, keyPrefix+key, url, ttl); err != nil {
		logger.C(ctx).Debug().Err(err).Str("key", key).Msg("signed url cache write failed")
	}
}

// Memory caches in process
type Memory struct {
	c *gocache.Cache
}

// NewMemory builds an in process cache swept every cleanup interval
func NewMemory(defaultTTL, cleanup time.Duration) *Memory {
	return &Memory{c: gocache.New(defaultTTL, cleanup)}
}

// Get returns a cached url
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores url for ttl
func (m *Memory) Set(_ context.Context, key, url string, ttl time.Duration) {
	m.c.Set(key, url, ttl)
}
