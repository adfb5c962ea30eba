package cliconfig

import (
	"fmt"
)

// Sources records where configuration was read from.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// Load layers configuration onto cfg in increasing precedence:
// TOML file, .env file, process environment. Flags already in cfg win when
// listed in changed. Empty paths fall back to the default locations; a
// missing default file is skipped, a missing explicit one is an error.
func Load(cfg *Config, configPath string, changed map[string]bool) (Sources, error) {
	var src Sources

	explicitConfig := configPath != ""
	if !explicitConfig {
		configPath = DefaultConfigPath()
	}
	if configPath != "" && (explicitConfig || FileExists(configPath)) {
		fc, err := LoadFileConfig(configPath)
		if err != nil {
			return src, fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return src, err
		}
		src.ConfigFile = configPath
	}

	envPath := cfg.EnvFile
	if envPath == "" {
		envPath = DefaultEnvFilePath()
	}
	var dotenv map[string]string
	if envPath != "" {
		vals, err := LoadEnvFile(envPath)
		if err != nil {
			return src, err
		}
		dotenv = vals
		src.EnvFile = envPath
	}

	ec, err := ParseEnv(dotenv)
	if err != nil {
		return src, err
	}
	if err := ApplyEnvConfig(cfg, ec, changed); err != nil {
		return src, err
	}

	return src, cfg.Validate()
}
