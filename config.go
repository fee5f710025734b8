package tdsclient

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by tdsclient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Validation ValidationConfig
	Discovery  DiscoveryConfig
	Cache      CacheConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// ValidationConfig defines a public type used by tdsclient APIs.
//
// ValidationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ValidationConfig struct {
	// MaxMinimumAlive caps the minimum_alive_secs a caller may request.
	// Zero disables the ceiling. The hosted dispenser enforces 3300 on its
	// side; set this to fail such requests before they reach the network.
	MaxMinimumAlive int
}

/*
====================================
DISCOVERY CONFIG
====================================
*/

// DiscoveryConfig defines a public type used by tdsclient APIs.
//
// DiscoveryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DiscoveryConfig struct {
	// DefaultPrefix is the directory namespace searched when no explicit
	// discovery key is supplied. Exactly one entry must exist under it.
	DefaultPrefix string
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig defines a public type used by tdsclient APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	// Enabled turns on the opt-in client-side token cache. Off by default:
	// token reuse is normally the dispenser's responsibility, and the client
	// never inspects token expiry, so cached entries age out purely by TTL.
	Enabled bool
	// TTL bounds how long a fetched token may be served from cache. The
	// effective per-entry TTL is the smaller of this and the request's
	// minimum alive seconds.
	TTL time.Duration
	// RedisPrefix namespaces cache keys.
	RedisPrefix string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by tdsclient APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by tdsclient APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Validation: ValidationConfig{
			MaxMinimumAlive: 0,
		},
		Discovery: DiscoveryConfig{
			DefaultPrefix: DefaultDiscoveryPrefix,
		},
		Cache: CacheConfig{
			Enabled:     false,
			TTL:         60 * time.Second,
			RedisPrefix: "tds",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a full copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Validation.MaxMinimumAlive < 0 {
		return errors.New("Validation.MaxMinimumAlive must not be negative")
	}
	if strings.TrimSpace(c.Discovery.DefaultPrefix) == "" {
		return errors.New("Discovery.DefaultPrefix must not be blank")
	}
	if !strings.HasPrefix(c.Discovery.DefaultPrefix, "/") {
		return errors.New("Discovery.DefaultPrefix must be an absolute path")
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return errors.New("Cache.TTL must be positive when cache is enabled")
		}
		if strings.TrimSpace(c.Cache.RedisPrefix) == "" {
			return errors.New("Cache.RedisPrefix must not be blank when cache is enabled")
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	return nil
}
