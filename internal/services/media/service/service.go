// Package service resolves storage keys into presigned urls across buckets
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/metrics"
	"servicegeek/internal/services/media/domain"
)

// Service is the public service port
type Service interface{ domain.ResolverPort }

// Options names buckets and expiries
type Options struct {
	LegacyBucket  string
	CurrentBucket string
	AvatarBucket  string

	Expiry       time.Duration
	AvatarExpiry time.Duration

	// Cache is optional; entries live for CacheTTL, capped below Expiry
	Cache    domain.URLCache
	CacheTTL time.Duration

	Metrics *metrics.Storage
}

// Svc implements the resolver
type Svc struct {
	signer domain.Signer
	opt    Options
}

// New constructs the service
func New(signer domain.Signer, opt Options) *Svc {
	if signer == nil {
		panic("media.Service requires a non nil Signer")
	}
	if opt.LegacyBucket == "" {
		opt.LegacyBucket = "project-images"
	}
	if opt.CurrentBucket == "" {
		opt.CurrentBucket = "media"
	}
	if opt.AvatarBucket == "" {
		opt.AvatarBucket = "profile-pictures"
	}
	if opt.Expiry <= 0 {
		opt.Expiry = 1800 * time.Second
	}
	if opt.AvatarExpiry <= 0 {
		opt.AvatarExpiry = 3600 * time.Second
	}
	if opt.CacheTTL <= 0 || opt.CacheTTL >= opt.Expiry {
		opt.CacheTTL = opt.Expiry - opt.Expiry/6
	}
	return &Svc{signer: signer, opt: opt}
}

// Resolve returns a url for every key some bucket could sign, keyed by the caller's key
func (s *Svc) Resolve(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	norm := make(map[string]string, len(keys))
	resolved := make(map[string]string, len(keys))
	var pending []string
	hits := 0
	for _, k := range keys {
		if _, dup := norm[k]; dup {
			continue
		}
		n := NormalizeKey(k)
		norm[k] = n
		if _, dup := resolved[n]; dup {
			continue
		}
		if s.opt.Cache != nil {
			if u, ok := s.opt.Cache.Get(ctx, n); ok {
				resolved[n] = u
				hits++
				continue
			}
		}
		resolved[n] = ""
		pending = append(pending, n)
	}

	if len(pending) > 0 {
		s.opt.Metrics.Cache(hits, len(pending))
		for n, u := range s.signBoth(ctx, pending) {
			resolved[n] = u
			if s.opt.Cache != nil {
				s.opt.Cache.Set(ctx, n, u, s.opt.CacheTTL)
			}
		}
	}

	for orig, n := range norm {
		if u := resolved[n]; u != "" {
			out[orig] = u
		}
	}
	s.opt.Metrics.Dropped(len(norm) - len(out))
	return out, nil
}

// signBoth asks both buckets at once; a bucket that fails entirely contributes nothing
func (s *Svc) signBoth(ctx context.Context, keys []string) map[string]string {
	buckets := []string{s.opt.CurrentBucket, s.opt.LegacyBucket}
	results := make([][]domain.Signed, len(buckets))

	var g errgroup.Group
	for i, b := range buckets {
		g.Go(func() error {
			res, err := s.signer.SignMany(ctx, b, keys, s.opt.Expiry)
			s.opt.Metrics.Signed(b, err == nil)
			if err != nil {
				logger.C(ctx).Warn().Err(err).Str("bucket", b).Int("keys", len(keys)).Msg("bucket signing failed")
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	merged := make(map[string]string, len(keys))
	for _, res := range results {
		for _, it := range res {
			if it.Err != "" || it.URL == "" || it.Key == "" {
				continue
			}
			if _, ok := merged[it.Key]; !ok {
				merged[it.Key] = it.URL
			}
		}
	}
	return merged
}

// ResolveAvatar signs one profile picture key
func (s *Svc) ResolveAvatar(ctx context.Context, key string) (string, error) {
	u, err := s.signer.Sign(ctx, s.opt.AvatarBucket, decode(key), s.opt.AvatarExpiry)
	s.opt.Metrics.Signed(s.opt.AvatarBucket, err == nil)
	return u, err
}
