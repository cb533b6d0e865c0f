package classifier

import (
	"math"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/features"
	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is an L2 regularised logistic model fitted by full
// batch gradient descent. The intercept is not regularised
type LogisticRegression struct {
	linearModel
	cfg config.LogisticRegressionConfig
}

// NewLogisticRegression creates an unfitted model
func NewLogisticRegression(cfg config.LogisticRegressionConfig) *LogisticRegression {
	if cfg.C <= 0 {
		cfg.C = 1
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 300
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 1
	}
	return &LogisticRegression{cfg: cfg}
}

// Fit minimises mean log-loss plus ||w||²/(2·C·n)
func (m *LogisticRegression) Fit(X *features.Matrix, y []int) error {
	if err := checkBinary(X, y); err != nil {
		return err
	}
	m.reset(X.Cols)

	n := float64(X.NumRows())
	grad := make([]float64, X.Cols)
	for iter := 0; iter < m.cfg.MaxIter; iter++ {
		floats.ScaleTo(grad, 1/(m.cfg.C*n), m.w)
		var gb float64
		for i, row := range X.Rows {
			r := (sigmoid(m.decision(row)) - float64(y[i])) / n
			row.AddScaledTo(grad, r)
			gb += r
		}

		floats.AddScaled(m.w, -m.cfg.LearningRate, grad)
		m.b -= m.cfg.LearningRate * gb

		if math.Max(floats.Norm(grad, math.Inf(1)), math.Abs(gb)) < m.cfg.Tol {
			break
		}
	}
	m.fitted = true
	return nil
}

// Predict labels rows whose spam probability exceeds one half
func (m *LogisticRegression) Predict(X *features.Matrix) ([]int, error) {
	return m.predict(X)
}

// PredictProba returns the spam probability of every row
func (m *LogisticRegression) PredictProba(X *features.Matrix) ([]float64, error) {
	if err := checkPredict(m.fitted, len(m.w), X); err != nil {
		return nil, err
	}
	out := make([]float64, X.NumRows())
	for i, row := range X.Rows {
		out[i] = sigmoid(m.decision(row))
	}
	return out, nil
}
