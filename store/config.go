package store

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPrefix     = "bm"
	defaultMaxRetries = 8
)

// Config controls key layout, expiry and logging of a [Store].
//
// The zero value is usable: it stores records without expiry under the
// "bm" prefix and discards logs.
type Config struct {
	// Prefix is prepended to every key. Defaults to "bm".
	Prefix string
	// TTL is applied on every write. Zero keeps records forever.
	TTL time.Duration
	// MaxRetries bounds optimistic transaction retries in [Store.Enable].
	// Defaults to 8.
	MaxRetries int
	// Logger receives debug and warning logs. Defaults to zap.NewNop().
	Logger *zap.Logger
	// Metrics enables in-process counters read through [Store.MetricsSnapshot].
	Metrics MetricsConfig
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	if strings.Contains(c.Prefix, ":") {
		return errors.New("store prefix must not contain ':'")
	}
	if c.TTL < 0 {
		return errors.New("store ttl must not be negative")
	}
	if c.MaxRetries < 0 {
		return errors.New("store max retries must not be negative")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = defaultPrefix
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
