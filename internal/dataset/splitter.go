package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// ErrSplitTooSmall is returned when a fold would be empty
var ErrSplitTooSmall = errors.New("corpus too small to split")

// Splitter partitions a corpus into train and test folds
type Splitter struct {
	testSize float64
	seed     int64
	stratify bool
	logger   *zap.Logger
}

// NewSplitter creates a new splitter
func NewSplitter(cfg config.SplitConfig, logger *zap.Logger) *Splitter {
	return &Splitter{
		testSize: cfg.TestSize,
		seed:     cfg.Seed,
		stratify: cfg.Stratify,
		logger:   logger,
	}
}

// Split performs one seeded partition. The same seed and corpus always give
// the same folds
func (s *Splitter) Split(corpus core.Corpus) (*core.Split, error) {
	if s.testSize <= 0 || s.testSize >= 1 {
		return nil, fmt.Errorf("test size must be in (0, 1), got %v", s.testSize)
	}

	n := len(corpus)
	nTest := int(math.Ceil(s.testSize*float64(n) - 1e-9))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, fmt.Errorf("%w: %d messages give %d train and %d test", ErrSplitTooSmall, n, nTrain, nTest)
	}

	rng := rand.New(rand.NewSource(s.seed))
	var trainIdx, testIdx []int
	if s.stratify {
		trainIdx, testIdx = stratifiedIndices(corpus, nTest, rng)
	} else {
		perm := rng.Perm(n)
		testIdx, trainIdx = perm[:nTest], perm[nTest:]
	}

	split := &core.Split{
		TrainText:   make([]string, len(trainIdx)),
		TrainLabels: make([]int, len(trainIdx)),
		TestText:    make([]string, len(testIdx)),
		TestLabels:  make([]int, len(testIdx)),
	}
	for k, i := range trainIdx {
		split.TrainText[k] = corpus[i].Text
		split.TrainLabels[k] = corpus[i].Class
	}
	for k, i := range testIdx {
		split.TestText[k] = corpus[i].Text
		split.TestLabels[k] = corpus[i].Class
	}

	s.logger.Info("Split data",
		zap.Int("train", len(trainIdx)),
		zap.Int("test", len(testIdx)),
		zap.Int64("seed", s.seed),
		zap.Bool("stratified", s.stratify))
	return split, nil
}

// stratifiedIndices allots test slots to each class in proportion to its
// size, largest remainders first, then shuffles within every class
func stratifiedIndices(corpus core.Corpus, nTest int, rng *rand.Rand) (train, test []int) {
	byClass := make(map[int][]int)
	for i, m := range corpus {
		byClass[m.Class] = append(byClass[m.Class], i)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	n := float64(len(corpus))
	alloc := make(map[int]int, len(classes))
	remainder := make(map[int]float64, len(classes))
	assigned := 0
	for _, c := range classes {
		exact := float64(nTest) * float64(len(byClass[c])) / n
		alloc[c] = int(math.Floor(exact))
		remainder[c] = exact - math.Floor(exact)
		assigned += alloc[c]
	}

	order := append([]int(nil), classes...)
	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := order[i], order[j]
		if remainder[ci] != remainder[cj] {
			return remainder[ci] > remainder[cj]
		}
		return len(byClass[ci]) > len(byClass[cj])
	})
	for k := 0; assigned < nTest && k < len(order); k++ {
		c := order[k]
		if alloc[c] < len(byClass[c]) {
			alloc[c]++
			assigned++
		}
	}

	for _, c := range classes {
		idx := append([]int(nil), byClass[c]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		test = append(test, idx[:alloc[c]]...)
		train = append(train, idx[alloc[c]:]...)
	}
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test
}
