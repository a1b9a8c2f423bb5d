// Package domain holds the signed url contracts
package domain

import (
	"context"
	"time"
)

// Signed is one bucket answer for one key; Err is set when the bucket refused it
type Signed struct {
	Key string
	URL string
	Err string
}

// Signer talks to object storage
type Signer interface {
	// SignMany signs keys in bucket; per key failures come back with Err set
	SignMany(ctx context.Context, bucket string, keys []string, expiry time.Duration) ([]Signed, error)
	// Sign signs a single key
	Sign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// URLCache remembers signed urls for a while
type URLCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string, ttl time.Duration)
}

// ResolverPort maps storage keys to short lived urls
type ResolverPort interface {
	Resolve(ctx context.Context, keys []string) (map[string]string, error)
	ResolveAvatar(ctx context.Context, key string) (string, error)
}

// SignURLsInput is the batch signing request
type SignURLsInput struct {
	Keys []string `json:"keys" validate:"required,min=1,max=500,dive,required"`
}

// SignURLsOutput maps each requested key that could be signed to its url
type SignURLsOutput struct {
	URLs map[string]string `json:"urls"`
}

// AvatarInput names one profile picture key
type AvatarInput struct {
	Key string `json:"key" validate:"required"`
}

// AvatarOutput carries the signed avatar url
type AvatarOutput struct {
	URL string `json:"url"`
}
