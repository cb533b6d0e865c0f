// Package classifier holds the binary classifiers benchmarked over TF-IDF
// rows. Every type name doubles as the model name in reports
package classifier

import (
	"fmt"
	"math"

	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
)

// checkBinary validates training input: one label per row, labels in {0,1}
// and both classes present
func checkBinary(X *features.Matrix, y []int) error {
	if X == nil {
		return fmt.Errorf("nil feature matrix")
	}
	if X.NumRows() != len(y) {
		return fmt.Errorf("%w (%d rows, %d labels)", core.ErrLengthMismatch, X.NumRows(), len(y))
	}
	var seen [2]bool
	for i, label := range y {
		if label != core.ClassHam && label != core.ClassSpam {
			return fmt.Errorf("label %d at row %d is not binary", label, i)
		}
		seen[label] = true
	}
	if !seen[0] || !seen[1] {
		return core.ErrSingleClass
	}
	return nil
}

// checkPredict validates prediction input against the fitted width
func checkPredict(fitted bool, cols int, X *features.Matrix) error {
	if !fitted {
		return core.ErrNotFitted
	}
	if X == nil {
		return fmt.Errorf("nil feature matrix")
	}
	if X.Cols != cols {
		return fmt.Errorf("expected %d features, got %d", cols, X.Cols)
	}
	return nil
}

// signs maps {0,1} labels to {-1,+1}
func signs(y []int) []float64 {
	out := make([]float64, len(y))
	for i, label := range y {
		if label == core.ClassSpam {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// linearModel is a hyperplane w·x + b shared by the linear classifiers
type linearModel struct {
	w      []float64
	b      float64
	fitted bool
}

func (m *linearModel) reset(cols int) {
	m.w = make([]float64, cols)
	m.b = 0
	m.fitted = false
}

func (m *linearModel) decision(v features.Vector) float64 {
	return v.DotDense(m.w) + m.b
}

// predict labels a row spam when its decision value is positive
func (m *linearModel) predict(X *features.Matrix) ([]int, error) {
	if err := checkPredict(m.fitted, len(m.w), X); err != nil {
		return nil, err
	}
	out := make([]int, X.NumRows())
	for i, row := range X.Rows {
		if m.decision(row) > 0 {
			out[i] = core.ClassSpam
		}
	}
	return out, nil
}

// Coefficients returns a copy of the fitted weights and intercept
func (m *linearModel) Coefficients() ([]float64, float64) {
	return append([]float64(nil), m.w...), m.b
}

var (
	_ core.Classifier = (*LogisticRegression)(nil)
	_ core.Classifier = (*MultinomialNB)(nil)
	_ core.Classifier = (*RandomForestClassifier)(nil)
	_ core.Classifier = (*GradientBoostingClassifier)(nil)
	_ core.Classifier = (*LinearSVC)(nil)
	_ core.Classifier = (*SGDClassifier)(nil)
)
