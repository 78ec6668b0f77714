package config

import "time"

// Config is the complete configuration surface the core recognizes, loaded
// from acquire.yaml.
type Config struct {
	Environment string           `yaml:"environment"`
	Session     SessionConfig    `yaml:"asession"`
	Controller  ControllerConfig `yaml:"controller"`
	Storefront  StorefrontConfig `yaml:"storefront"`
	Database    DatabaseConfig   `yaml:"database"`
	Retention   RetentionConfig  `yaml:"retention"`
	Identity    IdentityConfig   `yaml:"identity"`
}

// SessionConfig maps to the asession.* surface in spec.md §6.
type SessionConfig struct {
	Timeout             time.Duration `yaml:"timeout"`
	SessionRequestLimit int           `yaml:"session_request_limit"`
	Retries             int           `yaml:"retries"`
	Concurrency         int           `yaml:"concurrency"`
	TrustEnv            bool          `yaml:"trust_env"`
	RaiseForStatus      bool          `yaml:"raise_for_status"`
	ProxyURL            string        `yaml:"proxy"`
}

// RangeConfig is a {base, min, max} triple, used for both rate and
// concurrency per-stage bounds.
type RangeConfig struct {
	Base float64 `yaml:"base"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// StageConfigYAML is one controller stage's YAML shape: rate/concurrency
// bounds plus the stage-specific tuning knobs from spec.md §6.
type StageConfigYAML struct {
	Rate             RangeConfig   `yaml:"rate"`
	Concurrency      RangeConfig   `yaml:"concurrency"`
	Temperature      float64       `yaml:"temperature"`
	ResponseTime     time.Duration `yaml:"response_time"`
	StepResponseTime time.Duration `yaml:"step_response_time"`
	StepIncrease     float64       `yaml:"step_increase"`
	StepDecrease     float64       `yaml:"step_decrease"`
	Threshold        float64       `yaml:"threshold"`
	WindowSize       time.Duration `yaml:"window_size"`
	K                float64       `yaml:"k"`
	M                float64       `yaml:"m"`
}

// ControllerConfig carries one StageConfigYAML per controller stage.
type ControllerConfig struct {
	Baseline           StageConfigYAML `yaml:"baseline"`
	RateExplore        StageConfigYAML `yaml:"rate_explore"`
	ConcurrencyExplore StageConfigYAML `yaml:"concurrency_explore"`
	Exploit            StageConfigYAML `yaml:"exploit"`
	HistorySize        int             `yaml:"history_size"`
}

// StorefrontConfig carries per-job acquisition parameters: which category
// or app to query, and the paging window.
type StorefrontConfig struct {
	CategoryID  string `yaml:"category_id"`
	AppID       string `yaml:"app_id"`
	MaxRequests int    `yaml:"max_requests"`
	BatchSize   int    `yaml:"batch_size"`
	StartPage   int    `yaml:"start_page"`
	Limit       int    `yaml:"limit"`
}

// DatabaseConfig is the Postgres connection surface for the metrics/
// error_log sinks.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RetentionConfig governs the periodic pruning of old metrics/error_log
// rows.
type RetentionConfig struct {
	MetricsRetentionDays  int           `yaml:"metrics_retention_days"`
	ErrorLogRetentionDays int           `yaml:"error_log_retention_days"`
	CleanupInterval       time.Duration `yaml:"cleanup_interval"`
}

// IdentityConfig points at the file-backed daily counter pkg/identity uses.
type IdentityConfig struct {
	CounterPath string `yaml:"counter_path"`
}
