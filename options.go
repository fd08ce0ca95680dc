package lexord

import (
	"time"

	"go.uber.org/zap"
)

const (
	defaultKeyPrefix        = "lexord:"
	defaultReadinessTimeout = 10 * time.Second
	defaultReportTTL        = 24 * time.Hour
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs     []string
	username  string
	password  string
	keyPrefix string
	reportTTL time.Duration
	logger    *zap.Logger
}

// WithRedis sets the Redis addresses the client connects to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithUsername sets the database username (ACL setups).
func WithUsername(username string) Option {
	return func(c *clientConfig) {
		c.username = username
	}
}

// WithKeyPrefix namespaces every key the client touches. Default "lexord:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithReportTTL bounds how long cached verification reports stay readable.
func WithReportTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		if ttl > 0 {
			c.reportTTL = ttl
		}
	}
}

// WithLogger sets the logger for client lifecycle events. Default is a
// no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
