package config

import "time"

// DefaultConfig returns the core's built-in configuration. Initialize
// merges a user-supplied acquire.yaml on top of this with mergo, so a
// config file only needs to set what it wants to override.
func DefaultConfig() *Config {
	return &Config{
		Environment: "dev",
		Session: SessionConfig{
			Timeout:             30 * time.Second,
			SessionRequestLimit: 1000,
			Retries:             3,
			Concurrency:         5,
			TrustEnv:            false,
			RaiseForStatus:      true,
		},
		Controller: ControllerConfig{
			Baseline: StageConfigYAML{
				Rate:         RangeConfig{Base: 50, Min: 10, Max: 500},
				Concurrency:  RangeConfig{Base: 5, Min: 1, Max: 50},
				Temperature:  0.5,
				ResponseTime: 30 * time.Second,
				WindowSize:   time.Minute,
			},
			RateExplore: StageConfigYAML{
				Rate:             RangeConfig{Base: 50, Min: 10, Max: 500},
				Concurrency:      RangeConfig{Base: 5, Min: 1, Max: 50},
				Temperature:      0.5,
				ResponseTime:     60 * time.Second,
				StepResponseTime: 10 * time.Second,
				StepIncrease:     5,
				StepDecrease:     0.9,
				Threshold:        1.5,
				WindowSize:       time.Minute,
			},
			ConcurrencyExplore: StageConfigYAML{
				Rate:             RangeConfig{Base: 50, Min: 10, Max: 500},
				Concurrency:      RangeConfig{Base: 5, Min: 1, Max: 50},
				Temperature:      0.5,
				ResponseTime:     60 * time.Second,
				StepResponseTime: 10 * time.Second,
				StepIncrease:     2,
				StepDecrease:     0.9,
				Threshold:        1.5,
				WindowSize:       time.Minute,
			},
			Exploit: StageConfigYAML{
				Rate:         RangeConfig{Base: 50, Min: 10, Max: 500},
				Concurrency:  RangeConfig{Base: 5, Min: 1, Max: 50},
				Temperature:  0.25,
				ResponseTime: 60 * time.Second,
				WindowSize:   time.Minute,
				K:            0.5,
				M:            0.5,
			},
			HistorySize: 100,
		},
		Storefront: StorefrontConfig{
			MaxRequests: 100,
			BatchSize:   10,
			StartPage:   0,
			Limit:       10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "acquire",
			Database:        "acquire",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 15 * time.Minute,
		},
		Retention: RetentionConfig{
			MetricsRetentionDays:  30,
			ErrorLogRetentionDays: 30,
			CleanupInterval:       time.Hour,
		},
		Identity: IdentityConfig{
			CounterPath: "./var/identity-counter.json",
		},
	}
}
