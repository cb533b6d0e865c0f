package classifier

import (
	"math"
	"math/rand"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/features"
)

// noImprovementLimit is the number of epochs without loss improvement that
// ends training
const noImprovementLimit = 5

// SGDClassifier is a linear SVM fitted by stochastic gradient descent on the
// hinge loss with L2 penalty and the "optimal" learning rate schedule
// eta = 1/(alpha·(t0+t))
type SGDClassifier struct {
	linearModel
	cfg  config.SGDConfig
	seed int64

	// passes made by the last Fit
	epochs int
}

// NewSGDClassifier creates an unfitted model
func NewSGDClassifier(cfg config.SGDConfig, seed int64) *SGDClassifier {
	if cfg.Alpha <= 0 {
		cfg.Alpha = 1e-4
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 1000
	}
	return &SGDClassifier{cfg: cfg, seed: seed}
}

// Fit makes shuffled passes over the rows. Training stops after MaxIter
// epochs, or once the summed epoch loss has failed to improve by Tol·n for
// five consecutive epochs. A non-positive Tol disables the early stop
func (m *SGDClassifier) Fit(X *features.Matrix, y []int) error {
	if err := checkBinary(X, y); err != nil {
		return err
	}
	m.reset(X.Cols)
	m.epochs = 0

	n := X.NumRows()
	ys := signs(y)
	alpha := m.cfg.Alpha

	typw := math.Sqrt(1 / math.Sqrt(alpha))
	t0 := 1 / (typw * alpha)

	// w is held as scale·v so the per-step decay costs O(1)
	v := m.w
	scale := 1.0
	t := 1.0

	rng := rand.New(rand.NewSource(m.seed))
	bestLoss := math.Inf(1)
	stale := 0
	for epoch := 0; epoch < m.cfg.MaxIter; epoch++ {
		m.epochs++
		var sumLoss float64
		for _, i := range rng.Perm(n) {
			row := X.Rows[i]
			eta := 1 / (alpha * (t0 + t - 1))
			margin := ys[i] * (scale*row.DotDense(v) + m.b)
			sumLoss += math.Max(0, 1-margin)

			scale *= 1 - eta*alpha
			if margin <= 1 {
				update := eta * ys[i]
				row.AddScaledTo(v, update/scale)
				m.b += update
			}
			if scale < 1e-9 {
				for j := range v {
					v[j] *= scale
				}
				scale = 1
			}
			t++
		}

		if m.cfg.Tol > 0 {
			if sumLoss > bestLoss-m.cfg.Tol*float64(n) {
				stale++
			} else {
				stale = 0
			}
			if sumLoss < bestLoss {
				bestLoss = sumLoss
			}
			if stale >= noImprovementLimit {
				break
			}
		}
	}

	for j := range v {
		v[j] *= scale
	}
	m.fitted = true
	return nil
}

// Predict labels rows on the positive side of the hyperplane as spam
func (m *SGDClassifier) Predict(X *features.Matrix) ([]int, error) {
	return m.predict(X)
}
