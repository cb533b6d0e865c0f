package core

import (
	"context"

	"github.com/mikey/spam-bench/internal/features"
)

// Classifier defines a binary classifier trained on weighted feature rows
type Classifier interface {
	// Fit trains on rows X with labels y in {0,1}
	Fit(X *features.Matrix, y []int) error

	// Predict returns one label per row
	Predict(X *features.Matrix) ([]int, error)
}

// Estimator is a full text model: feature extraction plus a classifier
type Estimator interface {
	// Fit trains on raw documents
	Fit(ctx context.Context, docs []string, labels []int) error

	// Predict labels raw documents
	Predict(ctx context.Context, docs []string) ([]int, error)
}

// EstimatorBuilder wraps a classifier into a fresh estimator
type EstimatorBuilder func(clf Classifier) (Estimator, error)

// ResultStore defines the interface for recording benchmark runs
type ResultStore interface {
	// SaveRun stores a run and its results
	SaveRun(ctx context.Context, run *Run) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Close releases the underlying resources
	Close() error
}

// Reporter renders results for the user
type Reporter interface {
	// Report writes a ranked results table
	Report(results Results) error

	// ReportRuns writes a run history listing
	ReportRuns(runs []*Run) error
}
