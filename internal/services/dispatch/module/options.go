package module

import (
	"time"

	"servicegeek/internal/platform/config"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/services/dispatch/domain"
)

// Options controls dispatch transport and scheduling
type Options struct {
	Transport string // http | asynq

	// http broker
	BaseURL string
	Path    string
	Token   string
	Timeout time.Duration

	// asynq broker
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Queue         string

	TZ           string
	Windows      []int
	Immediate    bool
	RequeueDelay time.Duration
}

// FromConfig reads DISPATCH_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("DISPATCH_")
	rc := cfg.Prefix("SERVICE_REDIS_")
	return Options{
		Transport:     dc.MayEnum("TRANSPORT", "http", "http", "asynq"),
		BaseURL:       dc.MayString("BASE_URL", ""),
		Path:          dc.MayString("PATH", "/"),
		Token:         dc.MayString("TOKEN", ""),
		Timeout:       dc.MayDuration("TIMEOUT", 10*time.Second),
		RedisAddr:     rc.MayString("ADDR", ""),
		RedisPassword: rc.MayString("PASSWORD", ""),
		RedisDB:       rc.MayInt("DB", 0),
		Queue:         dc.MayString("QUEUE", "default"),
		TZ:            dc.MayString("TZ", "UTC"),
		Windows:       dc.MayInts("WINDOWS", domain.DefaultWindows),
		Immediate:     dc.MayBool("IMMEDIATE", false),
		RequeueDelay:  dc.MayDuration("REQUEUE_DELAY", 3*time.Minute),
	}
}

// Location resolves TZ, falling back to UTC
func (o Options) Location() *time.Location {
	if o.TZ == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(o.TZ)
	if err != nil {
		logger.Get().Warn().Str("tz", o.TZ).Err(err).Msg("unknown dispatch timezone; using UTC")
		return time.UTC
	}
	return loc
}
