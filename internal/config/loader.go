package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvHighScoreFile = "T2048_HIGHSCORE_FILE"
	EnvDBPath        = "T2048_DB"
	EnvLogFile       = "T2048_LOG_FILE"
	EnvLogLevel      = "T2048_LOG_LEVEL"
	EnvSSHAddr       = "T2048_SSH_ADDR"
	EnvIdleTimeout   = "T2048_SSH_IDLE_TIMEOUT"
)

// Load loads the configuration and applies environment overrides.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
//
// Only a customPath that cannot be read or parsed is an error; the other
// locations are skipped when missing or broken.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg := Default()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "t2048.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadDotEnv reads KEY=VALUE pairs from the given .env files into the
// process environment without overriding variables that are already set.
// With no arguments it reads ./.env. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: failed to load %s: %w", p, err)
		}
	}
	return nil
}

// applyEnv overrides cfg with any T2048_* variables that are set.
// Unusable values keep the file value and are reported in cfg.Warnings.
func applyEnv(cfg *Config) {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvHighScoreFile, &cfg.HighScoreFile},
		{EnvDBPath, &cfg.DBPath},
		{EnvLogFile, &cfg.Log.File},
		{EnvLogLevel, &cfg.Log.Level},
		{EnvSSHAddr, &cfg.SSH.Address},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvIdleTimeout); ok && v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 0 {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf(
				"%s must be a non-negative number of minutes, got %q; keeping %d",
				EnvIdleTimeout, v, cfg.SSH.IdleTimeoutMinutes))
		} else {
			cfg.SSH.IdleTimeoutMinutes = minutes
		}
	}
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}
