package store

import (
	"servicegeek/internal/platform/logger"
)

// Option adjusts a Store before any backend is opened
type Option func(*Store) error

// WithLogger routes backend logs (SQL trace, ping retries) through log, tagged component=store
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log.With().Str("component", "store").Logger()
		return nil
	}
}
