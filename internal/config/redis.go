package config

import (
	"fmt"
	"time"
)

// RedisConfig contains Redis connection and pool settings for the shared
// revalidation cache backend.
type RedisConfig struct {
	// Connection can be specified as a URL or individual components
	URL      string `envconfig:"URL"` // Full connection URL
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"min=0,max=15"`

	// TLS
	TLSEnabled bool `envconfig:"TLS_ENABLED" default:"false"`

	// Connection Pool
	PoolSize     int           `envconfig:"POOL_SIZE" default:"20" validate:"min=1"`
	MinIdleConns int           `envconfig:"MIN_IDLE_CONNS" default:"2" validate:"min=0"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`

	// Ping/connection retry settings
	PingMaxRetries int           `envconfig:"PING_MAX_RETRIES" default:"5" validate:"min=1"`
	PingBackoff    time.Duration `envconfig:"PING_BACKOFF" default:"2s"`
}

// Address returns the Redis address in host:port format.
// If URL is provided, it returns that for the redis client to parse.
func (c *RedisConfig) Address() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Validate checks if the Redis configuration is valid.
func (c *RedisConfig) Validate(environment string) error {
	// Either URL or components must be provided
	if c.URL == "" {
		if err := validateHost(c.Host, "redis"); err != nil {
			return err
		}

		if err := validatePort(c.Port, "redis"); err != nil {
			return err
		}

		// Require password in production for security
		if environment == EnvironmentProduction {
			if c.Password == "" {
				return fmt.Errorf("redis password is required in production environment")
			}
			if err := validatePasswordStrength(c.Password, "redis", environment); err != nil {
				return err
			}
			// Enforce TLS in production
			if !c.TLSEnabled {
				return fmt.Errorf("redis TLS must be enabled in production environment")
			}
		}
	} else {
		// Validate URL format
		if err := validateRedisURL(c.URL); err != nil {
			return fmt.Errorf("invalid redis URL: %w", err)
		}
	}

	return nil
}

// IsConfigured returns true if Redis has enough configuration to connect.
func (c *RedisConfig) IsConfigured() bool {
	if c.URL != "" {
		return true
	}
	return c.Host != "" && c.Port != ""
}

// validateRedisURL validates Redis connection URL format
func validateRedisURL(redisURL string) error {
	_, err := parseAndValidateURL(redisURL, []string{"redis", "rediss"})
	return err
}
