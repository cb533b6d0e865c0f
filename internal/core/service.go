package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/mikey/spam-bench/internal/metrics"
	"go.uber.org/zap"
)

// Evaluator fits every classifier of a roster through the same text pipeline
// and ranks them by held-out accuracy
type Evaluator struct {
	classifiers []Classifier
	build       EstimatorBuilder
	logger      *zap.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(classifiers []Classifier, build EstimatorBuilder, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		classifiers: classifiers,
		build:       build,
		logger:      logger,
	}
}

// ModelName returns the type name of a classifier
func ModelName(clf Classifier) string {
	t := reflect.TypeOf(clf)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Evaluate fits and scores each classifier in turn. A classifier that fails
// is logged and left out of the results; the others are unaffected
func (e *Evaluator) Evaluate(ctx context.Context, split *Split) (Results, error) {
	if split == nil {
		return nil, errors.New("evaluate: nil split")
	}

	results := make(Results, 0, len(e.classifiers))
	for _, clf := range e.classifiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := ModelName(clf)
		e.logger.Info("Fitting classifier", zap.String("model", name))

		result, err := e.evaluateOne(ctx, clf, split)
		if err != nil {
			e.logger.Error("Error occurred while fitting classifier",
				zap.String("model", name),
				zap.Error(err))
			continue
		}

		e.logger.Info("Classifier scored",
			zap.String("model", name),
			zap.Float64("score", result.Score),
			zap.Duration("fit_duration", result.FitDuration))
		results = append(results, *result)
	}

	if len(results) == 0 {
		e.logger.Warn("No classifier produced a score", zap.Int("attempted", len(e.classifiers)))
	}

	results.SortByScore()
	return results, nil
}

// evaluateOne builds, fits and scores a single classifier, turning panics into errors
func (e *Evaluator) evaluateOne(ctx context.Context, clf Classifier, split *Split) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	estimator, err := e.build(clf)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	start := time.Now()
	if err := estimator.Fit(ctx, split.TrainText, split.TrainLabels); err != nil {
		return nil, fmt.Errorf("failed to fit: %w", err)
	}
	fitDuration := time.Since(start)

	predictions, err := estimator.Predict(ctx, split.TestText)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}

	score, err := metrics.Accuracy(split.TestLabels, predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to score: %w", err)
	}
	confusion, err := metrics.NewConfusion(split.TestLabels, predictions, ClassSpam)
	if err != nil {
		return nil, fmt.Errorf("failed to score: %w", err)
	}

	return &Result{
		Model:       ModelName(clf),
		Score:       score,
		Precision:   confusion.Precision(),
		Recall:      confusion.Recall(),
		F1:          confusion.F1(),
		FitDuration: fitDuration,
	}, nil
}
