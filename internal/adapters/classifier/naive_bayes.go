package classifier

import (
	"fmt"
	"math"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
	"gonum.org/v1/gonum/floats"
)

// minAlpha keeps log probabilities finite for unseen features
const minAlpha = 1e-10

// MultinomialNB is a multinomial naive Bayes model with additive smoothing
type MultinomialNB struct {
	alpha float64

	classLogPrior  [2]float64
	featureLogProb [2][]float64
	cols           int
	fitted         bool
}

// NewMultinomialNB creates an unfitted model
func NewMultinomialNB(cfg config.MultinomialNBConfig) *MultinomialNB {
	alpha := cfg.Alpha
	if alpha < minAlpha {
		alpha = minAlpha
	}
	return &MultinomialNB{alpha: alpha}
}

// Fit estimates class priors and smoothed per-class feature distributions.
// Feature values must be non-negative
func (m *MultinomialNB) Fit(X *features.Matrix, y []int) error {
	if err := checkBinary(X, y); err != nil {
		return err
	}
	m.fitted = false

	var counts [2][]float64
	var classCount [2]float64
	for c := range counts {
		counts[c] = make([]float64, X.Cols)
	}
	for i, row := range X.Rows {
		for k, v := range row.Values {
			if v < 0 {
				return fmt.Errorf("negative value %v at row %d, column %d", v, i, row.Indices[k])
			}
		}
		row.AddScaledTo(counts[y[i]], 1)
		classCount[y[i]]++
	}

	n := float64(X.NumRows())
	for c := range counts {
		m.classLogPrior[c] = math.Log(classCount[c] / n)

		total := floats.Sum(counts[c]) + m.alpha*float64(X.Cols)
		logProb := make([]float64, X.Cols)
		for j, count := range counts[c] {
			logProb[j] = math.Log(count+m.alpha) - math.Log(total)
		}
		m.featureLogProb[c] = logProb
	}
	m.cols = X.Cols
	m.fitted = true
	return nil
}

// Predict picks the class with the highest joint log-likelihood, ham on ties
func (m *MultinomialNB) Predict(X *features.Matrix) ([]int, error) {
	if err := checkPredict(m.fitted, m.cols, X); err != nil {
		return nil, err
	}
	out := make([]int, X.NumRows())
	for i, row := range X.Rows {
		ham := m.classLogPrior[0] + row.DotDense(m.featureLogProb[0])
		spam := m.classLogPrior[1] + row.DotDense(m.featureLogProb[1])
		if spam > ham {
			out[i] = core.ClassSpam
		}
	}
	return out, nil
}
