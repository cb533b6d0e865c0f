// Package sampling rebalances training rows before a classifier is fitted
package sampling

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
)

// SMOTE oversamples every minority class up to the majority count with
// synthetic rows interpolated between a sample and one of its k nearest
// same-class neighbours
type SMOTE struct {
	k    int
	seed int64
}

// NewSMOTE creates an oversampler using k neighbours
func NewSMOTE(k int, seed int64) *SMOTE {
	if k < 1 {
		k = 1
	}
	return &SMOTE{k: k, seed: seed}
}

// FitResample returns X and y followed by the synthetic rows. The inputs are
// not modified. Every call draws from a fresh generator seeded identically
func (s *SMOTE) FitResample(X *features.Matrix, y []int) (*features.Matrix, []int, error) {
	if X.NumRows() != len(y) {
		return nil, nil, fmt.Errorf("smote: %w (%d rows, %d labels)", core.ErrLengthMismatch, X.NumRows(), len(y))
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, nil, fmt.Errorf("smote: %w", core.ErrSingleClass)
	}

	classes := make([]int, 0, len(byClass))
	majority := 0
	for c, rows := range byClass {
		classes = append(classes, c)
		if len(rows) > majority {
			majority = len(rows)
		}
	}
	sort.Ints(classes)

	outX := &features.Matrix{Rows: append([]features.Vector(nil), X.Rows...), Cols: X.Cols}
	outY := append([]int(nil), y...)

	rng := rand.New(rand.NewSource(s.seed))
	for _, c := range classes {
		rows := byClass[c]
		need := majority - len(rows)
		if need == 0 {
			continue
		}
		for _, v := range s.synthesize(X, rows, need, rng) {
			outX.Append(v)
			outY = append(outY, c)
		}
	}
	return outX, outY, nil
}

// synthesize creates n rows for the class made of the given rows
func (s *SMOTE) synthesize(X *features.Matrix, rows []int, n int, rng *rand.Rand) []features.Vector {
	out := make([]features.Vector, 0, n)

	// A lone sample has no neighbour to interpolate towards
	if len(rows) == 1 {
		for i := 0; i < n; i++ {
			out = append(out, X.Rows[rows[0]])
		}
		return out
	}

	k := s.k
	if k > len(rows)-1 {
		k = len(rows) - 1
	}

	neighbours := make(map[int][]int)
	for i := 0; i < n; i++ {
		pick := rng.Intn(len(rows) * k)
		sample, nn := pick/k, pick%k

		nbrs, ok := neighbours[sample]
		if !ok {
			nbrs = nearest(X, rows, sample, k)
			neighbours[sample] = nbrs
		}

		gap := rng.Float64()
		out = append(out, features.Lerp(X.Rows[rows[sample]], X.Rows[rows[nbrs[nn]]], gap))
	}
	return out
}

// nearest returns the positions in rows of the k rows closest to rows[self]
func nearest(X *features.Matrix, rows []int, self, k int) []int {
	type candidate struct {
		pos  int
		dist float64
	}
	origin := X.Rows[rows[self]]
	candidates := make([]candidate, 0, len(rows)-1)
	for pos, r := range rows {
		if pos == self {
			continue
		}
		candidates = append(candidates, candidate{pos: pos, dist: features.SquaredDistance(origin, X.Rows[r])})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].pos < candidates[j].pos
	})

	out := make([]int, k)
	for i := range out {
		out[i] = candidates[i].pos
	}
	return out
}
