package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoRun is reported by LastRun before the first validation completes.
var ErrNoRun = errors.New("no validation run completed yet")

// RunInfo describes the latest validation run.
type RunInfo struct {
	RunID      string    `json:"run_id"`
	ConfigPath string    `json:"config_path"`
	Valid      bool      `json:"valid"`
	Message    string    `json:"message,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// LastRun tracks the outcome of the latest validation run in watch mode.
// Its Check makes readiness follow validity: a watched configuration that
// currently fails validation is not ready.
type LastRun struct {
	mu   sync.RWMutex
	info *RunInfo
}

// NewLastRun creates a tracker with no recorded run.
func NewLastRun() *LastRun {
	return &LastRun{}
}

// Record stores the outcome of a run. A nil err means the run passed.
func (l *LastRun) Record(runID, configPath string, err error) {
	info := &RunInfo{
		RunID:      runID,
		ConfigPath: configPath,
		Valid:      err == nil,
		FinishedAt: time.Now(),
	}
	if err != nil {
		info.Message = err.Error()
	}

	l.mu.Lock()
	l.info = info
	l.mu.Unlock()
}

// Info returns a copy of the latest run, or false before the first run.
func (l *LastRun) Info() (RunInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.info == nil {
		return RunInfo{}, false
	}
	return *l.info, true
}

// Check is a CheckFunc failing unless the latest run passed.
func (l *LastRun) Check(ctx context.Context) error {
	info, ok := l.Info()
	if !ok {
		return ErrNoRun
	}
	if !info.Valid {
		return fmt.Errorf("%s is invalid: %s", info.ConfigPath, info.Message)
	}
	return nil
}
