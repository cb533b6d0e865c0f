package classifier

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mikey/spam-bench/internal/features"
)

// criterion selects the impurity a tree minimises
type criterion int

const (
	// gini impurity over {0,1} targets
	gini criterion = iota
	// squared error over real targets
	squaredError
)

// node is one tree node; leaves only carry a value
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
	leaf      bool
}

// tree is a binary decision tree stored as a flat node slice, root first
type tree struct {
	nodes []node
}

// predict walks v down to a leaf. Rows go left when their value is at most
// the node threshold
func (t *tree) predict(v features.Vector) float64 {
	i := 0
	for !t.nodes[i].leaf {
		n := t.nodes[i]
		if v.At(n.feature) <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].value
}

// stats accumulates weighted target moments
type stats struct {
	w, sy, syy float64
}

func (s *stats) add(o stats) {
	s.w += o.w
	s.sy += o.sy
	s.syy += o.syy
}

func (s stats) sub(o stats) stats {
	return stats{w: s.w - o.w, sy: s.sy - o.sy, syy: s.syy - o.syy}
}

// impurity returns the node impurity multiplied by its weight
func (s stats) impurity(c criterion) float64 {
	if s.w <= 0 {
		return 0
	}
	if c == gini {
		p := s.sy / s.w
		return 2 * p * (1 - p) * s.w
	}
	v := s.syy - s.sy*s.sy/s.w
	if v < 0 {
		return 0
	}
	return v
}

// treeBuilder grows a tree on a sparse matrix. Candidate splits are found
// per feature by sorting the node's non-zero entries and treating the
// implicit zeros as a single group
type treeBuilder struct {
	crit            criterion
	maxDepth        int // 0 for unlimited
	minSamplesSplit int
	maxFeatures     int // 0 for every feature
	rng             *rand.Rand

	// leafValue computes the value stored in a leaf; nil means the
	// weighted target mean
	leafValue func(rows []int) float64
}

// buildInput is the training data of one tree
type buildInput struct {
	X      *features.Matrix
	target []float64
	weight []float64
}

func (in buildInput) rowStats(r int) stats {
	w := in.weight[r]
	y := in.target[r]
	return stats{w: w, sy: w * y, syy: w * y * y}
}

// build grows a tree over rows, which must all carry a positive weight
func (b *treeBuilder) build(in buildInput, rows []int) *tree {
	t := &tree{}
	b.grow(t, in, rows, 0)
	return t
}

func (b *treeBuilder) grow(t *tree, in buildInput, rows []int, depth int) int {
	var total stats
	for _, r := range rows {
		total.add(in.rowStats(r))
	}

	id := len(t.nodes)
	t.nodes = append(t.nodes, node{leaf: true, value: b.value(in, rows, total)})

	if (b.maxDepth > 0 && depth >= b.maxDepth) ||
		len(rows) < b.minSamplesSplit ||
		len(rows) < 2 ||
		total.impurity(b.crit) <= 1e-12 {
		return id
	}

	feature, threshold, ok := b.bestSplit(in, rows, total)
	if !ok {
		return id
	}

	var left, right []int
	for _, r := range rows {
		if in.X.Rows[r].At(feature) <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return id
	}

	l := b.grow(t, in, left, depth+1)
	r := b.grow(t, in, right, depth+1)
	t.nodes[id] = node{feature: feature, threshold: threshold, left: l, right: r}
	return id
}

func (b *treeBuilder) value(in buildInput, rows []int, total stats) float64 {
	if b.leafValue != nil {
		return b.leafValue(rows)
	}
	if total.w <= 0 {
		return 0
	}
	return total.sy / total.w
}

// cell is a non-zero entry of a node row
type cell struct {
	row   int
	value float64
}

// group is the aggregate of every node row sharing a feature value
type group struct {
	value float64
	stats stats
}

// bestSplit returns the split with the largest impurity decrease among the
// candidate features. Features constant within the node are never counted
// towards maxFeatures
func (b *treeBuilder) bestSplit(in buildInput, rows []int, total stats) (int, float64, bool) {
	byFeature := make(map[int][]cell)
	for _, r := range rows {
		row := in.X.Rows[r]
		for k, f := range row.Indices {
			byFeature[f] = append(byFeature[f], cell{row: r, value: row.Values[k]})
		}
	}

	candidates := make([]int, 0, len(byFeature))
	for f, cells := range byFeature {
		if len(cells) < len(rows) || !sameValue(cells) {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}
	sort.Ints(candidates)
	if b.rng != nil {
		b.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}
	if b.maxFeatures > 0 && len(candidates) > b.maxFeatures {
		candidates = candidates[:b.maxFeatures]
	}

	parent := total.impurity(b.crit)
	bestGain := math.Inf(-1)
	var bestFeature int
	var bestThreshold float64
	for _, f := range candidates {
		groups := b.groups(in, byFeature[f], len(rows), total)
		var left stats
		for k := 0; k < len(groups)-1; k++ {
			left.add(groups[k].stats)
			right := total.sub(left)
			gain := parent - left.impurity(b.crit) - right.impurity(b.crit)
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = groups[k].value/2 + groups[k+1].value/2
			}
		}
	}
	return bestFeature, bestThreshold, !math.IsInf(bestGain, -1)
}

// groups returns the distinct values of a feature within the node in
// ascending order, the implicit zeros of the other node rows included
func (b *treeBuilder) groups(in buildInput, cells []cell, nodeRows int, total stats) []group {
	sort.Slice(cells, func(i, j int) bool { return cells[i].value < cells[j].value })

	var nonZero stats
	for _, c := range cells {
		nonZero.add(in.rowStats(c.row))
	}
	zero := group{value: 0, stats: total.sub(nonZero)}
	hasZero := len(cells) < nodeRows

	out := make([]group, 0, len(cells)+1)
	for _, c := range cells {
		if hasZero && c.value > 0 {
			out = append(out, zero)
			hasZero = false
		}
		s := in.rowStats(c.row)
		if n := len(out); n > 0 && out[n-1].value == c.value {
			out[n-1].stats.add(s)
		} else {
			out = append(out, group{value: c.value, stats: s})
		}
	}
	if hasZero {
		out = append(out, zero)
	}
	return out
}

func sameValue(cells []cell) bool {
	for _, c := range cells[1:] {
		if c.value != cells[0].value {
			return false
		}
	}
	return true
}
