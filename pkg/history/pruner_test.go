package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/telemetry/metrics"
)

func TestPruner_Prune(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	now := baseTime.AddDate(0, 0, 10)
	for i := 0; i < 10; i++ {
		run := sampleRun(fmt.Sprintf("run-%d", i), time.Duration(i)*24*time.Hour, OutcomeValid)
		if err := store.Record(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	metricsCfg := config.NewDefault().Telemetry.Metrics
	collector := metrics.NewCollector(&metricsCfg, prometheus.NewRegistry())

	pruner := NewPruner(store, config.RetentionConfig{Days: 5}, nil, collector)
	pruner.now = func() time.Time { return now }

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 5 {
		t.Errorf("Prune() = %d, want 5", deleted)
	}

	count, _ := store.Count(ctx, nil)
	if count != 5 {
		t.Errorf("remaining runs = %d, want 5", count)
	}

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "harmony_validator_history_pruned_total" {
			found = true
			if v := f.GetMetric()[0].GetCounter().GetValue(); v != 5 {
				t.Errorf("history_pruned_total = %v, want 5", v)
			}
		}
	}
	if !found {
		t.Error("history_pruned_total not registered")
	}
}

func TestPruner_Disabled(t *testing.T) {
	store := NewMemoryStore(0)
	_ = store.Record(context.Background(), sampleRun("old", -1000*24*time.Hour, OutcomeValid))

	pruner := NewPruner(store, config.RetentionConfig{Days: 0}, nil, nil)
	deleted, err := pruner.Prune(context.Background())
	if err != nil || deleted != 0 {
		t.Errorf("Prune() with Days=0 = %d, %v; want 0, nil", deleted, err)
	}
}

func TestPruner_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantError   bool
		wantRunning bool
	}{
		{"daily", "0 3 * * *", false, true},
		{"empty schedule", "", false, false},
		{"invalid schedule", "not a cron", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pruner := NewPruner(NewMemoryStore(0), config.RetentionConfig{Days: 30, Schedule: tt.schedule}, nil, nil)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := pruner.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			if pruner.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", pruner.IsRunning(), tt.wantRunning)
			}
			if tt.wantRunning && pruner.NextRun() == nil {
				t.Error("NextRun() returned nil for running pruner")
			}

			pruner.Stop()
			if pruner.IsRunning() {
				t.Error("pruner still running after Stop()")
			}
		})
	}
}

func TestPruner_StopsOnContextCancel(t *testing.T) {
	pruner := NewPruner(NewMemoryStore(0), config.RetentionConfig{Days: 30, Schedule: "0 3 * * *"}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for pruner.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if pruner.IsRunning() {
		t.Error("pruner still running after context cancelled")
	}
}
