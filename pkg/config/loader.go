package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Initialize loads acquire.yaml from configDir, merges it over
// DefaultConfig, validates the result, and returns it ready for use.
func Initialize(_ context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg := DefaultConfig()

	path := filepath.Join(configDir, "acquire.yaml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		data = ExpandEnv(data)
		var override Config
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
		}
		if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
			return nil, NewLoadError(path, fmt.Errorf("merge user config: %w", err))
		}
	case os.IsNotExist(err):
		log.Info("no acquire.yaml found, using built-in defaults")
	default:
		return nil, NewLoadError(path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	log.Info("configuration initialized",
		"environment", cfg.Environment,
		"category_id", cfg.Storefront.CategoryID,
		"app_id", cfg.Storefront.AppID)
	return cfg, nil
}

// Validate checks invariants the core relies on: retries and concurrency of
// at least 1, a category or app to query, and a configured database password.
func Validate(cfg *Config) error {
	if cfg.Session.Retries < 1 {
		return fmt.Errorf("%w: asession.retries must be >= 1", ErrInvalidValue)
	}
	if cfg.Session.Concurrency < 1 {
		return fmt.Errorf("%w: asession.concurrency must be >= 1", ErrInvalidValue)
	}
	if cfg.Storefront.CategoryID == "" && cfg.Storefront.AppID == "" {
		return fmt.Errorf("%w: storefront.category_id or storefront.app_id is required", ErrMissingRequiredField)
	}
	if cfg.Database.Password == "" {
		return fmt.Errorf("%w: database.password is required", ErrMissingRequiredField)
	}
	return nil
}
