// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package config holds application configuration loaded with Koanf v2.
//
// Loading order: built-in defaults, then an optional YAML config file,
// then environment variables (highest priority). Environment variables use
// the STOCKROOM_ prefix with section and key separated by the first
// underscore, e.g. STOCKROOM_SERVER_PORT=8080 maps to server.port and
// STOCKROOM_SECURITY_JWT_SECRET maps to security.jwt_secret.
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Taxes    TaxConfig      `koanf:"taxes"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataConfig holds flat-file storage settings.
type DataConfig struct {
	// Dir is the directory containing the JSON collections
	// (orders.json, products.json, ...).
	Dir string `koanf:"dir"`

	// CacheTTL is how long a loaded catalog snapshot stays fresh before
	// the next access triggers a reload.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds authentication and rate-limiting settings.
type SecurityConfig struct {
	// JWTSecret signs HS256 tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// RateLimit is the per-client request budget per minute on API routes.
	RateLimit int `koanf:"rate_limit"`

	// LoginRateLimit is the stricter per-client budget per minute on /login.
	LoginRateLimit int `koanf:"login_rate_limit"`

	// CORSOrigins lists allowed origins. Empty means allow all, matching
	// the permissive default of the dashboard deployment.
	CORSOrigins []string `koanf:"cors_origins"`
}

// APIConfig holds pagination and export limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// ExportPageSize bounds how many rows an export or picking-list
	// request pulls through the filter layer in one pass.
	ExportPageSize int `koanf:"export_page_size"`
}

// TaxConfig holds monetary settings used when creating orders.
type TaxConfig struct {
	// Rate is the combined sales tax rate applied to the subtotal.
	Rate float64 `koanf:"rate"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns the built-in defaults layered under file and
// environment sources.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			Dir:      "./data",
			CacheTTL: 5 * time.Minute,
		},
		Security: SecurityConfig{
			TokenTTL:       5 * time.Minute,
			RateLimit:      300,
			LoginRateLimit: 5,
		},
		API: APIConfig{
			DefaultPageSize: 25,
			MaxPageSize:     100,
			ExportPageSize:  10000,
		},
		Taxes: TaxConfig{
			// Combined GST + QST.
			Rate: 0.14975,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the loaded configuration for values that would fail at
// runtime. Called by Load after unmarshaling.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.CacheTTL <= 0 {
		return fmt.Errorf("data.cache_ttl must be positive")
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size must be between 1 and api.max_page_size")
	}
	if c.API.ExportPageSize < c.API.MaxPageSize {
		return fmt.Errorf("api.export_page_size must be at least api.max_page_size")
	}
	if c.Taxes.Rate < 0 || c.Taxes.Rate >= 1 {
		return fmt.Errorf("taxes.rate must be in [0, 1), got %g", c.Taxes.Rate)
	}
	return nil
}
