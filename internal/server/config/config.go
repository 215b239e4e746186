// Package config handles configuration for the server component,
// including defaults, environment variables, and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the cadastral lookup server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required; startup fails without it.
//   - ExternalAPIURL: base URL of the external cadastral data provider.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - ExternalTimeout: upper bound on a single provider call.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	ExternalAPIURL              string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ExternalTimeout             time.Duration
}

// ErrDatabaseDSNMissing is returned by Validate when no DSN was configured.
var ErrDatabaseDSNMissing = errors.New("DATABASE_URL is not set")

// LoadDefaults populates Config with development defaults. The database DSN
// deliberately has none: it must come from the environment or flags.
// NOTE: the secret key default is insecure and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.ExternalAPIURL = "http://external_api_mock:8001"
	c.SecretKey = "your-super-secret-key-change-me-in-production"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.ExternalTimeout = 10 * time.Second
}

// Validate checks invariants that must hold before the server starts.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return ErrDatabaseDSNMissing
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
