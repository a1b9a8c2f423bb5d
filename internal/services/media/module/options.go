package module

import (
	"time"

	"servicegeek/internal/platform/config"
)

// Options controls the storage signer
type Options struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
	MaxRetries int

	LegacyBucket  string
	CurrentBucket string
	AvatarBucket  string
	Expiry        time.Duration
	AvatarExpiry  time.Duration
	CacheTTL      time.Duration
}

// FromConfig reads STORAGE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("STORAGE_")
	return Options{
		BaseURL:       sc.MayString("BASE_URL", ""),
		ServiceKey:    sc.MayString("SERVICE_KEY", ""),
		Timeout:       sc.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries:    sc.MayInt("MAX_RETRIES", 2),
		LegacyBucket:  sc.MayString("LEGACY_BUCKET", "project-images"),
		CurrentBucket: sc.MayString("CURRENT_BUCKET", "media"),
		AvatarBucket:  sc.MayString("AVATAR_BUCKET", "profile-pictures"),
		Expiry:        sc.MayDuration("EXPIRY", 1800*time.Second),
		AvatarExpiry:  sc.MayDuration("AVATAR_EXPIRY", 3600*time.Second),
		CacheTTL:      sc.MayDuration("CACHE_TTL", 25*time.Minute),
	}
}
