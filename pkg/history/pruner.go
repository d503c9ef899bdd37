package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	"runbeam/harmony-validator/pkg/telemetry/metrics"
)

// Pruner deletes runs older than the retention period, either on demand
// or on a cron schedule.
type Pruner struct {
	store   Store
	config  config.RetentionConfig
	logger  *logging.Logger
	metrics *metrics.Collector
	now     func() time.Time

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewPruner creates a pruner for store. logger and collector may be nil.
func NewPruner(store Store, cfg config.RetentionConfig, logger *logging.Logger, collector *metrics.Collector) *Pruner {
	if logger == nil {
		logger = logging.Nop()
	}
	if collector == nil {
		collector = metrics.Disabled()
	}

	return &Pruner{
		store:   store,
		config:  cfg,
		logger:  logger.With("component", "history.retention"),
		metrics: collector,
		now:     time.Now,
		cron:    cron.New(),
	}
}

// Prune deletes runs older than the configured number of days and returns
// how many were removed. Days <= 0 disables pruning.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.Days <= 0 {
		return 0, nil
	}

	cutoff := p.now().AddDate(0, 0, -p.config.Days)

	deleted, err := p.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune by age failed: %w", err)
	}

	p.metrics.RecordHistoryPruned(deleted)

	if deleted > 0 {
		p.logger.Info("pruned validation history",
			"deleted_count", deleted,
			"retention_days", p.config.Days,
		)
	} else {
		p.logger.Debug("no history runs pruned", "cutoff_time", cutoff)
	}

	return deleted, nil
}

// Start schedules Prune with the configured cron expression. An empty
// schedule does nothing. The schedule stops when ctx is cancelled.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.Schedule == "" {
		p.logger.Debug("retention schedule not configured, skipping")
		return nil
	}
	if p.running {
		return nil
	}

	if _, err := cron.ParseStandard(p.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", p.config.Schedule, err)
	}

	_, err := p.cron.AddFunc(p.config.Schedule, func() {
		if _, err := p.Prune(ctx); err != nil {
			p.logger.Error("scheduled pruning failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("retention scheduler started",
		"schedule", p.config.Schedule,
		"retention_days", p.config.Days,
	)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop stops the schedule and waits for a running prune to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	<-p.cron.Stop().Done()
	p.running = false
	p.logger.Debug("retention scheduler stopped")
}

// IsRunning returns true while the schedule is active.
func (p *Pruner) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// NextRun returns the next scheduled prune time, or nil.
func (p *Pruner) NextRun() *time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries := p.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
