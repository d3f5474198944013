// Copyright (c) 2026 Plume. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a
strongly-typed struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: once loaded, configuration is read-only.
  - DI-friendly: passed to core components (DB, Redis) via constructors.
  - Zero hidden state: no globals hold configuration.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the Plume API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Session store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// RSA key pair for JWT signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// Load parses environment variables into a [Config] struct.
//
// It fails fast if any variable marked 'required' is missing, so a
// misconfigured deployment never reaches the listen phase.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins returns the extra CORS origins configured via EXTRA_ORIGINS
// (comma-separated), on top of the built-in production origin.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
