// Package bench runs the benchmark end to end: load, clean, normalize,
// split, evaluate, report and record
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/ports"
	"go.uber.org/zap"
)

// ErrNoHistory is returned when history is requested from a store that keeps
// runs only for the life of the process and has none
var ErrNoHistory = errors.New("result store keeps no runs between processes")

// volatile is implemented by stores whose runs do not outlive the process
type volatile interface {
	Volatile() bool
}

// Runner owns the sequential benchmark flow
type Runner struct {
	loader     ports.Loader
	cleaner    ports.Cleaner
	normalizer ports.TextNormalizer
	splitter   ports.Splitter
	evaluator  ports.ModelEvaluator
	reporter   core.Reporter
	store      core.ResultStore
	logger     *zap.Logger
}

// NewRunner creates a new benchmark runner. The store may be nil
func NewRunner(
	loader ports.Loader,
	cleaner ports.Cleaner,
	normalizer ports.TextNormalizer,
	splitter ports.Splitter,
	evaluator ports.ModelEvaluator,
	reporter core.Reporter,
	store core.ResultStore,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		loader:     loader,
		cleaner:    cleaner,
		normalizer: normalizer,
		splitter:   splitter,
		evaluator:  evaluator,
		reporter:   reporter,
		store:      store,
		logger:     logger,
	}
}

// Run benchmarks the corpus at path and prints the ranked results. Load,
// clean and split failures end the run; a failure to record the run is only
// logged
func (r *Runner) Run(ctx context.Context, path string) (*core.Run, error) {
	run := &core.Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Dataset:   path,
	}
	logger := r.logger.With(zap.String("run_id", run.ID))

	logger.Info("Loading data", zap.String("path", path))
	table, err := r.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	corpus, err := r.cleaner.Clean(table)
	if err != nil {
		return nil, fmt.Errorf("failed to clean data: %w", err)
	}

	logger.Info("Normalizing messages", zap.Int("messages", len(corpus)))
	normalized := r.normalizer.NormalizeAll(corpus.Texts())
	for i := range corpus {
		corpus[i].Text = normalized[i]
	}

	split, err := r.splitter.Split(corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to split data: %w", err)
	}

	results, err := r.evaluator.Evaluate(ctx, split)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate classifiers: %w", err)
	}
	run.Results = results

	if err := r.reporter.Report(results); err != nil {
		return nil, fmt.Errorf("failed to report results: %w", err)
	}

	if r.store != nil {
		if err := r.store.SaveRun(ctx, run); err != nil {
			logger.Error("Failed to record run", zap.Error(err))
		}
	}

	logger.Info("Benchmark complete",
		zap.Int("classifiers", len(results)),
		zap.Duration("elapsed", time.Since(run.StartedAt)))
	return run, nil
}

// History prints the most recent recorded runs
func (r *Runner) History(ctx context.Context, limit int) error {
	if r.store == nil {
		return fmt.Errorf("no result store configured")
	}
	runs, err := r.store.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if v, ok := r.store.(volatile); ok && v.Volatile() {
		if len(runs) == 0 {
			return fmt.Errorf("%w: configure a sqlite, mysql or postgres store", ErrNoHistory)
		}
		r.logger.Warn("Result store is in memory, listing runs of this process only")
	}
	return r.reporter.ReportRuns(runs)
}
