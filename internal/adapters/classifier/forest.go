package classifier

import (
	"math"
	"math/rand"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
)

// RandomForestClassifier averages the spam probabilities of gini trees, each
// grown on a bootstrap sample with sqrt(features) candidates per split
type RandomForestClassifier struct {
	cfg  config.RandomForestConfig
	seed int64

	trees []*tree
	cols  int
}

// NewRandomForestClassifier creates an unfitted forest
func NewRandomForestClassifier(cfg config.RandomForestConfig, seed int64) *RandomForestClassifier {
	if cfg.NEstimators <= 0 {
		cfg.NEstimators = 50
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &RandomForestClassifier{cfg: cfg, seed: seed}
}

// Fit grows the forest
func (m *RandomForestClassifier) Fit(X *features.Matrix, y []int) error {
	if err := checkBinary(X, y); err != nil {
		return err
	}
	m.trees = nil

	n := X.NumRows()
	target := make([]float64, n)
	for i, label := range y {
		target[i] = float64(label)
	}

	rng := rand.New(rand.NewSource(m.seed))
	maxFeatures := int(math.Sqrt(float64(X.Cols)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	b := &treeBuilder{
		crit:            gini,
		maxDepth:        m.cfg.MaxDepth,
		minSamplesSplit: m.cfg.MinSamplesSplit,
		maxFeatures:     maxFeatures,
		rng:             rng,
	}

	trees := make([]*tree, 0, m.cfg.NEstimators)
	for e := 0; e < m.cfg.NEstimators; e++ {
		weight := make([]float64, n)
		for i := 0; i < n; i++ {
			weight[rng.Intn(n)]++
		}
		rows := make([]int, 0, n)
		for r, w := range weight {
			if w > 0 {
				rows = append(rows, r)
			}
		}
		trees = append(trees, b.build(buildInput{X: X, target: target, weight: weight}, rows))
	}

	m.trees = trees
	m.cols = X.Cols
	return nil
}

// Predict labels a row spam when the mean tree probability exceeds one half
func (m *RandomForestClassifier) Predict(X *features.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(proba))
	for i, p := range proba {
		if p > 0.5 {
			out[i] = core.ClassSpam
		}
	}
	return out, nil
}

// PredictProba returns the mean spam probability of the trees for every row
func (m *RandomForestClassifier) PredictProba(X *features.Matrix) ([]float64, error) {
	if err := checkPredict(m.trees != nil, m.cols, X); err != nil {
		return nil, err
	}
	out := make([]float64, X.NumRows())
	for i, row := range X.Rows {
		var sum float64
		for _, t := range m.trees {
			sum += t.predict(row)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out, nil
}
