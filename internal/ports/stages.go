package ports

import (
	"context"

	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/dataset"
)

// Loader defines the interface for reading the raw corpus table
type Loader interface {
	// Load reads the delimited file at path
	Load(path string) (*dataset.Table, error)
}

// Cleaner defines the interface for turning the raw table into a labeled corpus
type Cleaner interface {
	// Clean drops unused columns, renames the label and text columns and maps labels
	Clean(t *dataset.Table) (core.Corpus, error)
}

// TextNormalizer defines the interface for per-message text normalization
type TextNormalizer interface {
	// Normalize returns the normalized form of one message
	Normalize(message string) string

	// NormalizeAll normalizes messages in order
	NormalizeAll(messages []string) []string
}

// Splitter defines the interface for the train/test partition
type Splitter interface {
	// Split partitions the corpus reproducibly
	Split(corpus core.Corpus) (*core.Split, error)
}

// ModelEvaluator defines the interface for fitting and ranking the classifier roster
type ModelEvaluator interface {
	// Evaluate returns the results of the classifiers that succeeded, best first
	Evaluate(ctx context.Context, split *core.Split) (core.Results, error)
}
