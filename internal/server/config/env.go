package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with pointer fields so that variables absent from
// the environment leave the corresponding defaults untouched.
type envConfig struct {
	EndpointAddr                *string        `env:"ADDRESS"`
	DatabaseDSN                 *string        `env:"DATABASE_URL"`
	ExternalAPIURL              *string        `env:"EXTERNAL_API_URL"`
	SecretKey                   *string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration *time.Duration `env:"ACCESS_TOKEN_TTL"`
	ExternalTimeout             *time.Duration `env:"EXTERNAL_TIMEOUT"`
}

// parseEnv overlays environment variables onto the given Config.
func parseEnv(config *Config) error {
	e := &envConfig{}
	if err := env.Parse(e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.EndpointAddr != nil {
		config.EndpointAddr = *e.EndpointAddr
	}
	if e.DatabaseDSN != nil {
		config.DatabaseDSN = *e.DatabaseDSN
	}
	if e.ExternalAPIURL != nil {
		config.ExternalAPIURL = *e.ExternalAPIURL
	}
	if e.SecretKey != nil {
		config.SecretKey = *e.SecretKey
	}
	if e.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *e.AccessTokenValidityDuration
	}
	if e.ExternalTimeout != nil {
		config.ExternalTimeout = *e.ExternalTimeout
	}

	return nil
}
