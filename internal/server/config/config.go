// Package config handles configuration for the federation server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"net/url"
	"time"
)

// Config holds runtime settings for the federation server.
//
// The external store can be addressed either by a full DSN (DatabaseDSN) or
// by discrete fields that are assembled into one; a non-empty DatabaseDSN
// wins.
type Config struct {
	EndpointAddr string

	DatabaseDSN string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string

	// ProviderID prefixes every composite identity id ("<id>:<username>").
	ProviderID string

	SecretKey             string
	TokenValidityDuration time.Duration

	// RunMigrations applies the embedded dev-store schema at startup.
	RunMigrations bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DBHost = "localhost"
	c.DBPort = "5432"
	c.DBName = "userdir"
	c.DBUser = "postgres"
	c.DBPassword = "postgres"
	c.DBSSLMode = "disable"
	c.ProviderID = "fedsql"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 5 * time.Minute
}

// DSN returns the pgx connection string for the external store, assembling
// it from the discrete fields unless a full override was given.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost,
		Path:   "/" + c.DBName,
	}
	if c.DBPort != "" {
		u.Host = c.DBHost + ":" + c.DBPort
	}
	if c.DBSSLMode != "" {
		u.RawQuery = "sslmode=" + c.DBSSLMode
	}

	return u.String()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
