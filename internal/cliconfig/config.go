package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/bft-labs/rockpapershock/internal/adapters/http"
	"github.com/bft-labs/rockpapershock/internal/domain"
)

// DefaultServiceURL is the default control API base.
const DefaultServiceURL = httpAdapter.DefaultServiceURL

// Config holds CLI configuration for rockpapershock.
type Config struct {
	APIToken string
	DeviceID string

	ServiceURL  string
	CustomName  string
	HTTPTimeout time.Duration

	LogLevel    string
	EnvFile     string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		CustomName:  httpAdapter.DefaultCustomName,
		HTTPTimeout: 10 * time.Second,
		LogLevel:    "warn",
	}
}

// Validate checks settings that make the CLI unusable and normalizes the
// service URL. Missing credentials are not checked here: the session reports
// them itself.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")

	if c.CustomName == "" {
		c.CustomName = httpAdapter.DefaultCustomName
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel for zerolog.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// Credentials extracts the values the session and device client need.
func (c Config) Credentials() domain.Credentials {
	return domain.Credentials{
		APIToken: c.APIToken,
		DeviceID: c.DeviceID,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
