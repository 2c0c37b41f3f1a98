// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultAPIURL is the Snyk API base URL used when SNYK_API_URL is unset.
	DefaultAPIURL = "https://api.snyk.io"

	// DefaultAPIVersion is the REST API version requested on every call.
	DefaultAPIVersion = "2024-10-15"

	// DefaultPageLimit is the page size requested from paginated endpoints.
	DefaultPageLimit = 100

	// DefaultDelay is the pause applied between per-project ignore fetches
	// to stay under upstream rate limits.
	DefaultDelay = 100 * time.Millisecond
)

// Config holds all configuration parameters for the application.
type Config struct {
	Snyk SnykConfig
}

// SnykConfig holds Snyk API specific configuration.
type SnykConfig struct {
	// Token is the API token sent on every request.
	Token string

	// APIURL is the base URL of the Snyk API.
	APIURL string

	// APIVersion is the REST API version query parameter.
	APIVersion string

	// GroupID optionally scopes organization discovery to one group.
	GroupID string

	// PageLimit is the per-page entity count requested from list endpoints.
	PageLimit int

	// Delay is the pause between consecutive project ignore fetches.
	Delay time.Duration
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("snyk.token", "SNYK_TOKEN")
	v.BindEnv("snyk.api.url", "SNYK_API_URL")
	v.BindEnv("snyk.api.version", "SNYK_API_VERSION")
	v.BindEnv("snyk.group.id", "SNYK_GROUP_ID")

	v.SetDefault("snyk.api.url", DefaultAPIURL)
	v.SetDefault("snyk.api.version", DefaultAPIVersion)

	config := &Config{
		Snyk: SnykConfig{
			Token:      v.GetString("snyk.token"),
			APIURL:     strings.TrimRight(v.GetString("snyk.api.url"), "/"),
			APIVersion: v.GetString("snyk.api.version"),
			GroupID:    v.GetString("snyk.group.id"),
			PageLimit:  DefaultPageLimit,
			Delay:      DefaultDelay,
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.Snyk.Token == "" {
		missingVars = append(missingVars, "SNYK_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
