// Package database provides the PostgreSQL client, migrations, and
// repository implementation backing the core's durable sinks
// (pkg/monitor.MetricsSink, pkg/monitor.ErrorSink) and its
// pkg/pipeline.Repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// Config holds database connection and pool settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// SearchPath, when set, scopes every pooled connection's unqualified
	// table names to this schema (used by tests for per-test isolation).
	SearchPath string
}

// Client wraps a pooled *sql.DB and implements pkg/pipeline.Repository and
// pkg/monitor.MetricsSink against it; ErrorSink adapts it to
// pkg/monitor.ErrorSink.
type Client struct {
	db *sql.DB
}

// DB returns the underlying connection pool for health checks and direct
// queries.
func (c *Client) DB() *sql.DB {
	return c.db
}

// NewClientFromDB wraps an already-open *sql.DB, useful for tests.
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// NewClient opens a pooled connection to cfg, applies embedded migrations,
// and returns a ready Client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)
	if cfg.SearchPath != "" {
		dsn += fmt.Sprintf(" options='-c search_path=%s'", cfg.SearchPath)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db, cfg.Database, cfg.SearchPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Client{db: db}, nil
}
