package classifier

import (
	"math"
	"math/rand"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/features"
)

// LinearSVC is a linear support vector machine with squared hinge loss,
// solved by dual coordinate descent. The intercept is learned as the weight
// of a constant feature and is therefore regularised
type LinearSVC struct {
	linearModel
	cfg  config.LinearSVCConfig
	seed int64
}

// NewLinearSVC creates an unfitted model
func NewLinearSVC(cfg config.LinearSVCConfig, seed int64) *LinearSVC {
	if cfg.C <= 0 {
		cfg.C = 1
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 1000
	}
	if cfg.Tol <= 0 {
		cfg.Tol = 1e-4
	}
	return &LinearSVC{cfg: cfg, seed: seed}
}

// Fit runs coordinate descent over the dual variables until the projected
// gradient spread falls under the tolerance
func (m *LinearSVC) Fit(X *features.Matrix, y []int) error {
	if err := checkBinary(X, y); err != nil {
		return err
	}
	m.reset(X.Cols)

	n := X.NumRows()
	ys := signs(y)
	diag := 1 / (2 * m.cfg.C)
	q := make([]float64, n)
	for i, row := range X.Rows {
		q[i] = row.SquaredNorm() + 1 + diag
	}

	alpha := make([]float64, n)
	rng := rand.New(rand.NewSource(m.seed))
	for iter := 0; iter < m.cfg.MaxIter; iter++ {
		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range rng.Perm(n) {
			row := X.Rows[i]
			g := ys[i]*m.decision(row) - 1 + diag*alpha[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Max(alpha[i]-g/q[i], 0)
				d := (alpha[i] - old) * ys[i]
				row.AddScaledTo(m.w, d)
				m.b += d
			}
		}
		if pgMax-pgMin <= m.cfg.Tol {
			break
		}
	}
	m.fitted = true
	return nil
}

// Predict labels rows on the positive side of the hyperplane as spam
func (m *LinearSVC) Predict(X *features.Matrix) ([]int, error) {
	return m.predict(X)
}
