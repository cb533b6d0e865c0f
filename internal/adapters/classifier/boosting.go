package classifier

import (
	"math"
	"math/rand"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
)

// GradientBoostingClassifier is an additive model of regression trees fitted
// to the log-loss gradient, starting from the prior log-odds. Leaf values
// take one Newton step
type GradientBoostingClassifier struct {
	cfg config.GradientBoostingConfig

	init  float64
	trees []*tree
	cols  int
}

// NewGradientBoostingClassifier creates an unfitted model
func NewGradientBoostingClassifier(cfg config.GradientBoostingConfig) *GradientBoostingClassifier {
	if cfg.NEstimators <= 0 {
		cfg.NEstimators = 150
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.1
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &GradientBoostingClassifier{cfg: cfg}
}

// Fit adds one tree per stage
func (m *GradientBoostingClassifier) Fit(X *features.Matrix, y []int) error {
	if err := checkBinary(X, y); err != nil {
		return err
	}
	m.trees = nil

	n := X.NumRows()
	var positives float64
	for _, label := range y {
		positives += float64(label)
	}
	prior := positives / float64(n)
	m.init = math.Log(prior / (1 - prior))

	raw := make([]float64, n)
	for i := range raw {
		raw[i] = m.init
	}
	residual := make([]float64, n)
	hessian := make([]float64, n)
	weight := make([]float64, n)
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
		weight[i] = 1
	}

	b := &treeBuilder{
		crit:            squaredError,
		maxDepth:        m.cfg.MaxDepth,
		minSamplesSplit: m.cfg.MinSamplesSplit,
		rng:             rand.New(rand.NewSource(m.cfg.RandomState)),
		leafValue: func(leaf []int) float64 {
			var num, den float64
			for _, r := range leaf {
				num += residual[r]
				den += hessian[r]
			}
			if math.Abs(den) < 1e-150 {
				return 0
			}
			return num / den
		},
	}

	trees := make([]*tree, 0, m.cfg.NEstimators)
	for stage := 0; stage < m.cfg.NEstimators; stage++ {
		for i := range residual {
			p := sigmoid(raw[i])
			residual[i] = float64(y[i]) - p
			hessian[i] = p * (1 - p)
		}

		t := b.build(buildInput{X: X, target: residual, weight: weight}, rows)
		for i, row := range X.Rows {
			raw[i] += m.cfg.LearningRate * t.predict(row)
		}
		trees = append(trees, t)
	}

	m.trees = trees
	m.cols = X.Cols
	return nil
}

// Predict labels rows with positive log-odds as spam
func (m *GradientBoostingClassifier) Predict(X *features.Matrix) ([]int, error) {
	if err := checkPredict(m.trees != nil, m.cols, X); err != nil {
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

func (m *GradientBoostingClassifier) decision(v features.Vector) float64 {
	f := m.init
	for _, t := range m.trees {
		f += m.cfg.LearningRate * t.predict(v)
	}
	return f
}
