package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps runs in memory. When MaxRecords is reached the oldest
// run is evicted.
type MemoryStore struct {
	runs       []*Run // insertion order
	maxRecords int
	closed     bool
	mu         sync.RWMutex
}

// NewMemoryStore creates an in-memory store. maxRecords <= 0 means unbounded.
func NewMemoryStore(maxRecords int) *MemoryStore {
	return &MemoryStore{maxRecords: maxRecords}
}

// Record stores a copy of run.
func (s *MemoryStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("memory", "record", ErrClosed)
	}

	runCopy := *run
	s.runs = append(s.runs, &runCopy)

	if s.maxRecords > 0 && len(s.runs) > s.maxRecords {
		s.runs = s.runs[len(s.runs)-s.maxRecords:]
	}
	return nil
}

// List returns matching runs, newest first.
func (s *MemoryStore) List(ctx context.Context, query *Query) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("memory", "list", ErrClosed)
	}
	if query == nil {
		query = &Query{}
	}

	results := []*Run{}
	for _, run := range s.runs {
		if matches(run, query) {
			runCopy := *run
			results = append(results, &runCopy)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Count returns the number of matching runs.
func (s *MemoryStore) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, NewStorageError("memory", "count", ErrClosed)
	}
	if query == nil {
		query = &Query{}
	}

	var count int64
	for _, run := range s.runs {
		if matches(run, query) {
			count++
		}
	}
	return count, nil
}

// DeleteBefore removes runs that started before cutoff.
func (s *MemoryStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, NewStorageError("memory", "delete", ErrClosed)
	}

	kept := s.runs[:0]
	var deleted int64
	for _, run := range s.runs {
		if run.StartedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, run)
	}
	s.runs = kept
	return deleted, nil
}

// Close marks the store closed and drops its runs.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.runs = nil
	return nil
}

func matches(run *Run, query *Query) bool {
	if query.ConfigPath != "" && run.ConfigPath != query.ConfigPath {
		return false
	}
	if query.Outcome != "" && run.Outcome != query.Outcome {
		return false
	}
	if query.Since != nil && run.StartedAt.Before(*query.Since) {
		return false
	}
	if query.Before != nil && !run.StartedAt.Before(*query.Before) {
		return false
	}
	return true
}
