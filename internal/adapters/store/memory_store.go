// Package store records benchmark runs so earlier results can be listed
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// ErrNilRun is returned when saving a nil run
var ErrNilRun = errors.New("nil run")

// MemoryStore is an in-memory implementation of the ResultStore interface.
// Runs live for the lifetime of the process
type MemoryStore struct {
	runs   []*core.Run
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{logger: logger}
}

// Volatile reports that runs are lost when the process exits
func (s *MemoryStore) Volatile() bool {
	return true
}

// SaveRun stores a copy of the run
func (s *MemoryStore) SaveRun(ctx context.Context, run *core.Run) error {
	if run == nil {
		return ErrNilRun
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prepareRun(run)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, copyRun(run))
	s.logger.Debug("Stored run in memory", zap.String("run_id", run.ID), zap.Int("total_runs", len(s.runs)))
	return nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit returns every run
func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.Run, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0; i-- {
		out = append(out, copyRun(s.runs[i]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

// prepareRun fills in a missing ID and start time
func prepareRun(run *core.Run) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
}

func copyRun(run *core.Run) *core.Run {
	c := *run
	c.Results = append(core.Results(nil), run.Results...)
	return &c
}
