// Package pipeline chains feature extraction, oversampling and a classifier
// into a single text estimator
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
	"github.com/mikey/spam-bench/internal/sampling"
	"go.uber.org/zap"
)

const spamTermsLogged = 10

// weighted is implemented by linear classifiers exposing their hyperplane
type weighted interface {
	Coefficients() ([]float64, float64)
}

// Pipeline is count vectorizer → TF-IDF → optional SMOTE → classifier.
// Every Fit starts from fresh transformers; SMOTE only touches training rows
type Pipeline struct {
	vectorizerCfg config.VectorizerConfig
	smoteCfg      config.SMOTEConfig
	classifier    core.Classifier
	logger        *zap.Logger

	vectorizer *features.CountVectorizer
	tfidf      *features.TfidfTransformer
}

// New creates a new pipeline around a classifier
func New(vectorizerCfg config.VectorizerConfig, smoteCfg config.SMOTEConfig, classifier core.Classifier, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		vectorizerCfg: vectorizerCfg,
		smoteCfg:      smoteCfg,
		classifier:    classifier,
		logger:        logger,
	}
}

// Builder returns an EstimatorBuilder producing pipelines with the given settings
func Builder(vectorizerCfg config.VectorizerConfig, smoteCfg config.SMOTEConfig, logger *zap.Logger) core.EstimatorBuilder {
	return func(clf core.Classifier) (core.Estimator, error) {
		if clf == nil {
			return nil, fmt.Errorf("nil classifier")
		}
		return New(vectorizerCfg, smoteCfg, clf, logger), nil
	}
}

// Fit learns the vocabulary and idf weights from docs, rebalances the
// weighted rows and trains the classifier on them
func (p *Pipeline) Fit(ctx context.Context, docs []string, labels []int) error {
	if len(docs) != len(labels) {
		return fmt.Errorf("%w (%d documents, %d labels)", core.ErrLengthMismatch, len(docs), len(labels))
	}
	p.vectorizer, p.tfidf = nil, nil

	vectorizer := features.NewCountVectorizer(p.vectorizerCfg.MinDF, p.vectorizerCfg.NGramMin, p.vectorizerCfg.NGramMax)
	counts, err := vectorizer.FitTransform(docs)
	if err != nil {
		return fmt.Errorf("failed to vectorize: %w", err)
	}

	tfidf := features.NewTfidfTransformer()
	X, err := tfidf.FitTransform(counts)
	if err != nil {
		return fmt.Errorf("failed to weight terms: %w", err)
	}

	y := labels
	if p.smoteCfg.Enabled {
		if err := ctx.Err(); err != nil {
			return err
		}
		X, y, err = sampling.NewSMOTE(p.smoteCfg.KNeighbors, p.smoteCfg.Seed).FitResample(X, labels)
		if err != nil {
			return fmt.Errorf("failed to oversample: %w", err)
		}
	}

	p.logger.Debug("Training rows prepared",
		zap.Int("documents", len(docs)),
		zap.Int("vocabulary", X.Cols),
		zap.Int("rows", X.NumRows()))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.classifier.Fit(X, y); err != nil {
		return err
	}

	p.vectorizer, p.tfidf = vectorizer, tfidf

	if !p.logger.Core().Enabled(zap.DebugLevel) {
		return nil
	}
	if terms := p.SpamTerms(spamTermsLogged); len(terms) > 0 {
		p.logger.Debug("Most spam-indicative terms",
			zap.String("model", core.ModelName(p.classifier)),
			zap.Strings("terms", terms))
	}
	return nil
}

// Predict labels docs with the fitted transformers and classifier
func (p *Pipeline) Predict(ctx context.Context, docs []string) ([]int, error) {
	if p.vectorizer == nil {
		return nil, core.ErrNotFitted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts, err := p.vectorizer.Transform(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize: %w", err)
	}
	X, err := p.tfidf.Transform(counts)
	if err != nil {
		return nil, fmt.Errorf("failed to weight terms: %w", err)
	}
	return p.classifier.Predict(X)
}

// Vocabulary returns the fitted n-gram terms in column order
func (p *Pipeline) Vocabulary() []string {
	if p.vectorizer == nil {
		return nil
	}
	return p.vectorizer.Vocabulary()
}

// SpamTerms returns up to n terms with the largest positive weights of a
// fitted linear classifier, strongest first. Other classifiers give nil
func (p *Pipeline) SpamTerms(n int) []string {
	clf, ok := p.classifier.(weighted)
	vocab := p.Vocabulary()
	if !ok || vocab == nil {
		return nil
	}
	w, _ := clf.Coefficients()
	if len(w) != len(vocab) {
		return nil
	}

	cols := make([]int, len(w))
	for i := range cols {
		cols[i] = i
	}
	sort.SliceStable(cols, func(i, j int) bool { return w[cols[i]] > w[cols[j]] })

	var terms []string
	for _, c := range cols {
		if len(terms) == n || w[c] <= 0 {
			break
		}
		terms = append(terms, vocab[c])
	}
	return terms
}
