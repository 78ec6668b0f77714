// Package retention runs the periodic pruning of old metrics/error_log
// rows, so the durable sinks in pkg/database don't grow unbounded.
package retention

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/appvocai/acquire/pkg/config"
)

// Pruner is the minimal surface retention needs from the database client:
// deleting rows older than a cutoff from a named table's timestamp column.
type Pruner interface {
	DB() *sql.DB
}

// Service periodically deletes metrics and error_log rows older than the
// configured retention window. All deletes are idempotent and safe to run
// from multiple processes.
type Service struct {
	cfg    config.RetentionConfig
	pruner Pruner

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService returns a Service enforcing cfg against pruner.
func NewService(cfg config.RetentionConfig, pruner Pruner) *Service {
	return &Service{cfg: cfg, pruner: pruner}
}

// Start launches the background cleanup loop. It is a no-op if already
// running.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("retention service started",
		"metrics_retention_days", s.cfg.MetricsRetentionDays,
		"error_log_retention_days", s.cfg.ErrorLogRetentionDays,
		"interval", s.cfg.CleanupInterval)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("retention service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.runAll(ctx)

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Service) runAll(ctx context.Context) {
	s.prune(ctx, "metrics", "dt_started", s.cfg.MetricsRetentionDays)
	s.prune(ctx, "error_log", "dt_error", s.cfg.ErrorLogRetentionDays)
}

func (s *Service) prune(ctx context.Context, table, timestampColumn string, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	stmt := fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`, table, timestampColumn)
	result, err := s.pruner.DB().ExecContext(ctx, stmt, cutoff)
	if err != nil {
		slog.Error("retention: prune failed", "table", table, "error", err)
		return
	}

	if n, err := result.RowsAffected(); err == nil && n > 0 {
		slog.Info("retention: pruned rows", "table", table, "count", n, "cutoff", cutoff)
	}
}
