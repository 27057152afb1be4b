package config

import (
	"errors"
	"sync"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Host                  string `mapstructure:"HOST"`
	Port                  int    `mapstructure:"PORT"`
	SSLPort               int    `mapstructure:"SSL_PORT"`
	SSLCert               string `mapstructure:"SSL_CERT"`
	SSLKey                string `mapstructure:"SSL_KEY"`
	TestMode              bool   `mapstructure:"TEST_MODE"`
	StorePath             string `mapstructure:"STORE_PATH"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogFormat             string `mapstructure:"LOG_FORMAT"`
	BcryptCost            int    `mapstructure:"BCRYPT_COST"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	SessionMinutes        int    `mapstructure:"SESSION_MINUTES"`
	LoginRatePerMin       int    `mapstructure:"LOGIN_RATE_PER_MIN"`
	AdminUser             string `mapstructure:"ADMIN_USER"`
	AdminPassword         string `mapstructure:"ADMIN_PASSWORD"`
	RouteMetricsEnabled   bool   `mapstructure:"ROUTE_METRICS_ENABLED"`
	RequestLoggingEnabled bool   `mapstructure:"REQUEST_LOGGING_ENABLED"`
}

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	// Double-check in case another goroutine loaded it while we waited for the lock
	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	// Set defaults
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8010)
	// HTTPS is opt-in outside test mode: setting SSL_PORT also requires
	// SSL_CERT and SSL_KEY.
	v.SetDefault("SSL_PORT", 0)
	v.SetDefault("SSL_CERT", "")
	v.SetDefault("SSL_KEY", "")
	v.SetDefault("TEST_MODE", false)
	v.SetDefault("STORE_PATH", "virtboard.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("JWT_SECRET", "this-is-a-default-jwt-secret-key-with-32-plus-characters")
	v.SetDefault("SESSION_MINUTES", 30)
	v.SetDefault("LOGIN_RATE_PER_MIN", 5)
	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ROUTE_METRICS_ENABLED", true)
	v.SetDefault("REQUEST_LOGGING_ENABLED", false)

	// Configure Viper to read from .env file (if present)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Try to read .env file (it's okay if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	// Override with OS environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	// Cache the configuration
	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validate checks if required configuration fields are properly set
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("HOST cannot be empty")
	}
	if c.Port <= 0 {
		return errors.New("PORT must be greater than 0")
	}
	if c.SSLPort < 0 {
		return errors.New("SSL_PORT must not be negative")
	}
	if c.SSLPort > 0 && c.SSLPort == c.Port {
		return errors.New("SSL_PORT must differ from PORT")
	}
	if (c.SSLCert == "") != (c.SSLKey == "") {
		return errors.New("SSL_CERT and SSL_KEY must be set together")
	}
	if c.SSLPort > 0 && c.SSLCert == "" && !c.TestMode {
		return errors.New("SSL_CERT and SSL_KEY are required when SSL_PORT is set outside test mode")
	}
	if c.StorePath == "" {
		return errors.New("STORE_PATH cannot be empty")
	}
	if c.LogLevel == "" {
		return errors.New("LOG_LEVEL cannot be empty")
	}
	if c.LogFormat == "" {
		return errors.New("LOG_FORMAT cannot be empty")
	}
	if c.BcryptCost < 10 || c.BcryptCost > 16 {
		return errors.New("BCRYPT_COST must be between 10 and 16")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.SessionMinutes <= 0 {
		return errors.New("SESSION_MINUTES must be greater than 0")
	}
	if c.LoginRatePerMin < 1 {
		return errors.New("LOGIN_RATE_PER_MIN must be greater than or equal to 1")
	}
	if c.AdminUser == "" {
		return errors.New("ADMIN_USER cannot be empty")
	}
	return nil
}
