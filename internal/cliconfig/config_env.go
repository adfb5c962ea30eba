package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFileName is looked up next to the executable, then in the
// working directory.
const DefaultEnvFileName = ".env"

// EnvConfig lists the environment variables rockpapershock reads.
// SHOCK_API_KEY and SHOCK_ID keep the names existing .env files use.
type EnvConfig struct {
	APIToken    string `env:"SHOCK_API_KEY"`
	DeviceID    string `env:"SHOCK_ID"`
	ServiceURL  string `env:"ROCKPAPERSHOCK_SERVICE_URL"`
	CustomName  string `env:"ROCKPAPERSHOCK_CUSTOM_NAME"`
	HTTPTimeout string `env:"ROCKPAPERSHOCK_HTTP_TIMEOUT"`
	LogLevel    string `env:"ROCKPAPERSHOCK_LOG_LEVEL"`
	WatchConfig string `env:"ROCKPAPERSHOCK_WATCH_CONFIG"`
}

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file without touching the
// process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return vals, nil
}

// DefaultEnvFilePath returns the first existing .env candidate, or "".
func DefaultEnvFilePath() string {
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), DefaultEnvFileName))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, DefaultEnvFileName))
	}
	for _, c := range candidates {
		if FileExists(c) {
			return c
		}
	}
	return ""
}

// ParseEnv resolves EnvConfig from dotenv values overlaid by the non-empty
// process environment. dotenv may be nil.
func ParseEnv(dotenv map[string]string) (EnvConfig, error) {
	merged := make(map[string]string, len(dotenv))
	for k, v := range dotenv {
		merged[k] = v
	}
	for k, v := range env.ToMap(os.Environ()) {
		if v == "" {
			continue
		}
		merged[k] = v
	}

	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: merged}); err != nil {
		return ec, fmt.Errorf("parse env: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies environment (and dotenv) values to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, ec EnvConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("api-token", ec.APIToken, &cfg.APIToken)
	s.setString("device-id", ec.DeviceID, &cfg.DeviceID)
	s.setString("service-url", ec.ServiceURL, &cfg.ServiceURL)
	s.setString("custom-name", ec.CustomName, &cfg.CustomName)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", ec.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	if ec.WatchConfig != "" && !changed["watch-config"] {
		cfg.WatchConfig = ec.WatchConfig == "true" || ec.WatchConfig == "1"
	}
	return nil
}
