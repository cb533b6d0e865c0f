package factory

import (
	"fmt"

	"github.com/mikey/spam-bench/internal/adapters/classifier"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/pipeline"
	"go.uber.org/zap"
)

// ClassifierFactory creates the classifier roster and the pipeline around
// each classifier
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a classifier by its model name
func (f *ClassifierFactory) CreateClassifier(name string) (core.Classifier, error) {
	models := f.cfg.GetModels()

	switch name {
	case config.ModelLogisticRegression:
		return classifier.NewLogisticRegression(models.LogisticRegression), nil
	case config.ModelMultinomialNB:
		return classifier.NewMultinomialNB(models.MultinomialNB), nil
	case config.ModelRandomForest:
		return classifier.NewRandomForestClassifier(models.RandomForest, models.Seed), nil
	case config.ModelGradientBoosting:
		return classifier.NewGradientBoostingClassifier(models.GradientBoosting), nil
	case config.ModelLinearSVC:
		return classifier.NewLinearSVC(models.LinearSVC, models.Seed), nil
	case config.ModelSGD:
		return classifier.NewSGDClassifier(models.SGD, models.Seed), nil
	default:
		return nil, fmt.Errorf("unsupported classifier: %s", name)
	}
}

// CreateClassifiers creates the enabled roster in configuration order
func (f *ClassifierFactory) CreateClassifiers() ([]core.Classifier, error) {
	enabled := f.cfg.GetModels().Enabled
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no classifier enabled")
	}

	roster := make([]core.Classifier, 0, len(enabled))
	for _, name := range enabled {
		clf, err := f.CreateClassifier(name)
		if err != nil {
			return nil, err
		}
		roster = append(roster, clf)
	}

	f.logger.Info("Created classifier roster", zap.Strings("models", enabled))
	return roster, nil
}

// CreateEstimatorBuilder returns the builder wrapping each classifier in a
// fresh vectorizer → TF-IDF → SMOTE pipeline
func (f *ClassifierFactory) CreateEstimatorBuilder() core.EstimatorBuilder {
	return pipeline.Builder(f.cfg.GetVectorizer(), f.cfg.GetSMOTE(), f.logger)
}
