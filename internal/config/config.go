// Package config loads server configuration from an env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Config stores all configuration of the application.
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	Environment    string        `mapstructure:"ENVIRONMENT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	CORSOrigins    string        `mapstructure:"CORS_ALLOW_ORIGINS"`

	// GooglePlacesAPIKey is not required at boot; places endpoints answer 500 without it.
	GooglePlacesAPIKey    string        `mapstructure:"GOOGLE_PLACES_API_KEY"`
	PlacesBaseURL         string        `mapstructure:"PLACES_BASE_URL"`
	UpstreamTimeout       time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	UpstreamRatePerSecond float64       `mapstructure:"UPSTREAM_RATE_PER_SECOND"`
	UpstreamBurst         int           `mapstructure:"UPSTREAM_BURST"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	MarkersFile   string `mapstructure:"MARKERS_FILE"`
	DBSource      string `mapstructure:"DB_SOURCE"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":           "0.0.0.0:5050",
	"ENVIRONMENT":              "production",
	"LOG_LEVEL":                "info",
	"REQUEST_TIMEOUT":          "10s",
	"CORS_ALLOW_ORIGINS":       "*",
	"GOOGLE_PLACES_API_KEY":    "",
	"PLACES_BASE_URL":          "https://maps.googleapis.com/maps/api/place",
	"UPSTREAM_TIMEOUT":         "5s",
	"UPSTREAM_RATE_PER_SECOND": 10.0,
	"UPSTREAM_BURST":           20,
	"STORAGE_DRIVER":           StorageFile,
	"MARKERS_FILE":             "data/markers.json",
	"DB_SOURCE":                "",
}

// LoadConfig reads app.env from path (if present), then overrides it with
// environment variables. A .env file in the working directory is loaded first.
func LoadConfig(path string) (Config, error) {
	var config Config

	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read app.env: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}

	config.StorageDriver = strings.ToLower(strings.TrimSpace(config.StorageDriver))
	config.GooglePlacesAPIKey = strings.TrimSpace(config.GooglePlacesAPIKey)

	return config, config.Validate()
}

// Validate checks values that would make the server unusable.
func (c Config) Validate() error {
	var errs []error
	if c.ServerAddress == "" {
		errs = append(errs, &ConfigError{Field: "SERVER_ADDRESS", Message: "cannot be empty"})
	}
	switch c.StorageDriver {
	case StorageFile:
		if c.MarkersFile == "" {
			errs = append(errs, &ConfigError{Field: "MARKERS_FILE", Message: "required for the file driver"})
		}
	case StoragePostgres:
		if c.DBSource == "" {
			errs = append(errs, &ConfigError{Field: "DB_SOURCE", Message: "required for the postgres driver"})
		}
	default:
		errs = append(errs, &ConfigError{Field: "STORAGE_DRIVER", Message: "must be \"file\" or \"postgres\""})
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, &ConfigError{Field: "UPSTREAM_TIMEOUT", Message: "must be positive"})
	}
	if c.UpstreamRatePerSecond < 0 || c.UpstreamBurst < 0 {
		errs = append(errs, &ConfigError{Field: "UPSTREAM_RATE_PER_SECOND", Message: "rate and burst cannot be negative"})
	}
	return errors.Join(errs...)
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
